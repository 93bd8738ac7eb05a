package trial_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financetrackr/backend/internal/trial"
)

func newGate(t *testing.T) *trial.Gate {
	store, err := trial.NewFileStore(t.TempDir())
	require.Nil(t, err)
	return trial.NewGate(store)
}

func TestCheckAccessSequence(t *testing.T) {
	gate := newGate(t)

	// Three free visits, counting down
	for visit := 1; visit <= trial.MaxFreeUses; visit++ {
		decision, err := gate.CheckAccess("client-1", trial.FeatureBudgets, false)
		require.Nil(t, err)

		assert.True(t, decision.Allowed, "visit %d should be allowed", visit)
		assert.False(t, decision.Authenticated)
		assert.Equal(t, trial.MaxFreeUses-visit, decision.RemainingUses)
		assert.Equal(t, trial.MaxFreeUses, decision.MaxFreeUses)
		assert.Empty(t, decision.RedirectTo)
	}

	// The fourth visit is denied with a login redirect
	decision, err := gate.CheckAccess("client-1", trial.FeatureBudgets, false)
	require.Nil(t, err)

	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.RemainingUses)
	assert.Equal(t, "/auth/login?callbackUrl=/budgets&trial=expired", decision.RedirectTo)
}

func TestCheckAccessAuthenticatedBypass(t *testing.T) {
	gate := newGate(t)

	// Exhaust the anonymous visits first
	for i := 0; i < trial.MaxFreeUses; i++ {
		_, err := gate.CheckAccess("client-1", trial.FeatureGoals, false)
		require.Nil(t, err)
	}

	// Authentication bypasses the limit and does not touch the counter
	for i := 0; i < 5; i++ {
		decision, err := gate.CheckAccess("client-1", trial.FeatureGoals, true)
		require.Nil(t, err)
		assert.True(t, decision.Allowed)
		assert.True(t, decision.Authenticated)
	}

	// Anonymous access stays denied
	decision, err := gate.CheckAccess("client-1", trial.FeatureGoals, false)
	require.Nil(t, err)
	assert.False(t, decision.Allowed)
}

func TestCountersIndependentPerFeature(t *testing.T) {
	gate := newGate(t)

	for i := 0; i < trial.MaxFreeUses; i++ {
		_, err := gate.CheckAccess("client-1", trial.FeatureTransactions, false)
		require.Nil(t, err)
	}

	decision, err := gate.CheckAccess("client-1", trial.FeatureTransactions, false)
	require.Nil(t, err)
	assert.False(t, decision.Allowed)

	// Other features still have their full allowance
	decision, err = gate.CheckAccess("client-1", trial.FeatureAnalytics, false)
	require.Nil(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, trial.MaxFreeUses-1, decision.RemainingUses)
}

func TestCountersIndependentPerClient(t *testing.T) {
	gate := newGate(t)

	for i := 0; i < trial.MaxFreeUses; i++ {
		_, err := gate.CheckAccess("client-1", trial.FeatureBudgets, false)
		require.Nil(t, err)
	}

	decision, err := gate.CheckAccess("client-2", trial.FeatureBudgets, false)
	require.Nil(t, err)
	assert.True(t, decision.Allowed)
}

func TestPeekDoesNotCount(t *testing.T) {
	gate := newGate(t)

	for i := 0; i < 10; i++ {
		decision, err := gate.Peek("client-1", trial.FeatureBudgets, false)
		require.Nil(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, trial.MaxFreeUses, decision.RemainingUses)
	}

	decision, err := gate.CheckAccess("client-1", trial.FeatureBudgets, false)
	require.Nil(t, err)
	assert.Equal(t, trial.MaxFreeUses-1, decision.RemainingUses)
}

func TestPeekDeniedWhenExhausted(t *testing.T) {
	gate := newGate(t)

	for i := 0; i < trial.MaxFreeUses; i++ {
		_, err := gate.CheckAccess("client-1", trial.FeatureBudgets, false)
		require.Nil(t, err)
	}

	decision, err := gate.Peek("client-1", trial.FeatureBudgets, false)
	require.Nil(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "/auth/login?callbackUrl=/budgets&trial=expired", decision.RedirectTo)
}

func TestRedirectPreservesFeature(t *testing.T) {
	gate := newGate(t)

	for _, feature := range trial.Features {
		for i := 0; i < trial.MaxFreeUses; i++ {
			_, err := gate.CheckAccess("client-1", feature, false)
			require.Nil(t, err)
		}

		decision, err := gate.CheckAccess("client-1", feature, false)
		require.Nil(t, err)
		assert.Equal(t, fmt.Sprintf("/auth/login?callbackUrl=/%s&trial=expired", feature), decision.RedirectTo)
	}
}

func TestFeatureValid(t *testing.T) {
	for _, feature := range trial.Features {
		assert.True(t, feature.Valid())
	}

	assert.False(t, trial.Feature("reports").Valid())
	assert.False(t, trial.Feature("").Valid())
}

func TestFileStorePersistence(t *testing.T) {
	dir := t.TempDir()

	store, err := trial.NewFileStore(dir)
	require.Nil(t, err)

	gate := trial.NewGate(store)
	for i := 0; i < trial.MaxFreeUses; i++ {
		_, err := gate.CheckAccess("client-1", trial.FeatureBudgets, false)
		require.Nil(t, err)
	}

	// A gate over a reopened store sees the same counters
	reopened, err := trial.NewFileStore(dir)
	require.Nil(t, err)

	decision, err := trial.NewGate(reopened).CheckAccess("client-1", trial.FeatureBudgets, false)
	require.Nil(t, err)
	assert.False(t, decision.Allowed)
}

func TestFileStoreEmpty(t *testing.T) {
	store, err := trial.NewFileStore(t.TempDir())
	require.Nil(t, err)

	usage, err := store.Get("unknown-client")
	require.Nil(t, err)
	assert.Empty(t, usage)
}

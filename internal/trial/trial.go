// Package trial implements the bounded anonymous-usage counter that gates
// feature access before authentication.
package trial

import (
	"errors"
	"fmt"
)

var (
	// ErrFeatureInvalid is returned when a request names an unknown feature.
	ErrFeatureInvalid = errors.New("the specified feature does not exist")

	// ErrTrialExpired is returned when an anonymous client has used up its
	// free visits for a feature.
	ErrTrialExpired = errors.New("your free uses for this feature are used up, please log in to continue")
)

// Feature names a gated part of the application.
type Feature string

const (
	FeatureTransactions Feature = "transactions"
	FeatureBudgets      Feature = "budgets"
	FeatureGoals        Feature = "goals"
	FeatureAnalytics    Feature = "analytics"
)

// Features lists all gated features.
var Features = []Feature{FeatureTransactions, FeatureBudgets, FeatureGoals, FeatureAnalytics}

// Valid reports whether the feature is known.
func (f Feature) Valid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

// MaxFreeUses is the number of visits per feature an anonymous client gets
// before being redirected to login.
const MaxFreeUses = 3

// Usage maps feature names to visit counts.
type Usage map[Feature]int

// CountStore persists per-client usage counters.
type CountStore interface {
	Get(clientID string) (Usage, error)
	Put(clientID string, usage Usage) error
}

// Decision is the outcome of a CheckAccess call.
type Decision struct {
	Allowed       bool   `json:"allowed"`
	Authenticated bool   `json:"authenticated"`
	RemainingUses int    `json:"remainingUses"`
	MaxFreeUses   int    `json:"maxFreeUses"`
	RedirectTo    string `json:"redirectTo,omitempty"`
}

// Gate counts anonymous feature visits and decides access.
type Gate struct {
	store CountStore
	max   int
}

// NewGate returns a Gate with the default visit limit.
func NewGate(store CountStore) *Gate {
	return &Gate{store: store, max: MaxFreeUses}
}

// CheckAccess is evaluated once per feature visit.
//
// Authenticated callers always pass and leave the counter untouched. An
// anonymous caller within the limit is let through and the visit is
// counted; one at the limit is denied with a login redirect that preserves
// the original destination and carries a trial-expired marker.
func (g *Gate) CheckAccess(clientID string, feature Feature, authenticated bool) (Decision, error) {
	if authenticated {
		return Decision{
			Allowed:       true,
			Authenticated: true,
			MaxFreeUses:   g.max,
		}, nil
	}

	usage, err := g.store.Get(clientID)
	if err != nil {
		return Decision{}, fmt.Errorf("reading trial usage: %w", err)
	}
	if usage == nil {
		usage = Usage{}
	}

	count := usage[feature]
	if count >= g.max {
		return Decision{
			Allowed:     false,
			MaxFreeUses: g.max,
			RedirectTo:  redirectTo(feature),
		}, nil
	}

	usage[feature] = count + 1
	if err := g.store.Put(clientID, usage); err != nil {
		return Decision{}, fmt.Errorf("persisting trial usage: %w", err)
	}

	return Decision{
		Allowed:       true,
		RemainingUses: remaining(g.max, count),
		MaxFreeUses:   g.max,
	}, nil
}

// Peek reports the current decision for a client without counting a visit.
func (g *Gate) Peek(clientID string, feature Feature, authenticated bool) (Decision, error) {
	if authenticated {
		return Decision{
			Allowed:       true,
			Authenticated: true,
			MaxFreeUses:   g.max,
		}, nil
	}

	usage, err := g.store.Get(clientID)
	if err != nil {
		return Decision{}, fmt.Errorf("reading trial usage: %w", err)
	}

	count := usage[feature]
	if count >= g.max {
		return Decision{
			Allowed:     false,
			MaxFreeUses: g.max,
			RedirectTo:  redirectTo(feature),
		}, nil
	}

	return Decision{
		Allowed:       true,
		RemainingUses: g.max - count,
		MaxFreeUses:   g.max,
	}, nil
}

// remaining is the number of uses left after the current visit, floored at
// zero for display.
func remaining(max, count int) int {
	left := max - count - 1
	if left < 0 {
		return 0
	}
	return left
}

func redirectTo(feature Feature) string {
	return fmt.Sprintf("/auth/login?callbackUrl=/%s&trial=expired", feature)
}

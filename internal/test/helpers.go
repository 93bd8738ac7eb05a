// Package test contains helpers shared by the test suites.
package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tolerance is the duration that a CreatedAt or UpdatedAt timestamp is
// allowed to differ from the time at which it is checked.
const Tolerance = time.Minute

// TmpFile returns the path to a database file in a temporary directory
// that is cleaned up after the test.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "gorm.db")
}

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, handler http.Handler, method, url, body string, headers ...map[string]string) httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.Nil(t, err)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	handler.ServeHTTP(recorder, req)

	return *recorder
}

// AssertHTTPStatus asserts the status code of a response, printing the
// response body on failure.
func AssertHTTPStatus(t *testing.T, expected int, r *httptest.ResponseRecorder) {
	assert.Equal(t, expected, r.Code, "HTTP status is wrong. Response body: %s", r.Body.String())
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v'", r.Body, reflect.TypeOf(target), err)
	}
}

// DecodeError returns the error field of an error response body.
func DecodeError(t *testing.T, body []byte) string {
	var response struct {
		Error string `json:"error"`
	}

	require.Nil(t, json.Unmarshal(body, &response))
	return response.Error
}

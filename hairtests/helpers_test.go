package hairtests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Now: func() time.Time { return fixedTime }}
}

func newTestSession() *Session {
	return NewSession(NewCredentials("1700000000"))
}

// runCases runs the cases chosen by build against the given base URL, as a single phase.
func runCases(
	baseURL string,
	timeout time.Duration,
	session *Session,
	build func(*environment) []framework.TestCase,
) framework.Results {
	e := &environment{
		client:  framework.NewServiceClient(baseURL, timeout, nil),
		session: session,
		options: testOptions(),
	}
	return framework.RunPhases(nil, nil, []framework.Phase{{Name: "test", Cases: build(e)}})
}

// runCaseAgainst runs one named case against a server using handler, and returns its result.
func runCaseAgainst(
	t *testing.T,
	handler http.Handler,
	session *Session,
	build func(*environment) []framework.TestCase,
	name string,
) framework.TestResult {
	server := httptest.NewServer(handler)
	defer server.Close()
	return runNamedCase(t, server.URL, time.Second, session, build, name)
}

func runNamedCase(
	t *testing.T,
	baseURL string,
	timeout time.Duration,
	session *Session,
	build func(*environment) []framework.TestCase,
	name string,
) framework.TestResult {
	results := runCases(baseURL, timeout, session, func(e *environment) []framework.TestCase {
		for _, tc := range build(e) {
			if tc.Name == name {
				return []framework.TestCase{tc}
			}
		}
		return nil
	})
	require.Len(t, results.Tests, 1, "no case named %q", name)
	return results.Tests[0]
}

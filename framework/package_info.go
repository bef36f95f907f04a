// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of black-box HTTP API tests.
//
// The general model is:
//
// 1. The test harness talks to a service under test through a ServiceClient, which issues
// JSON requests against a base URL and reports transport failures as errors rather than
// aborting the run.
//
// 2. Tests are TestCase descriptors grouped into ordered Phases. A TestCase may declare
// Preconditions; if any of them is unsatisfied, the case is recorded as skipped and its
// action never runs.
//
// 3. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// failures, warnings, and debug output. Every case invocation produces exactly one
// TestResult.
//
// 4. Results are turned into a Summary by Summarize, and rendered separately as text or
// JSON.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the test cases, the request payloads, and a domain-specific test API on top of the test
// context.
package framework

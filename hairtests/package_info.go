// Package hairtests contains the hair-health API contract tests themselves and their
// supporting API.
//
// Test harness infrastructure that is not specific to the hair-health domain, such as the
// HTTP client, the test runner and result reporting, is in the lower-level framework package.
package hairtests

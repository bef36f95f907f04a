package hairtests

import (
	"github.com/hairhealth/api-contract-tests/framework"

	"golang.org/x/exp/slices"
)

const (
	goodCoveragePercent     = 80.0
	moderateCoveragePercent = 60.0
)

func (e *environment) coverageTests() []framework.TestCase {
	return []framework.TestCase{
		e.testCase("API Endpoint Coverage", doCoverageTest),
	}
}

// doCoverageTest reports how many of the catalog's endpoints have answered at least once so
// far in this session, whatever the status code.
func doCoverageTest(t *T) {
	answered := t.Session().Answered()
	for _, ep := range Catalog {
		if !slices.Contains(answered, ep) {
			t.Debug("not covered: %s", ep)
		}
	}
	percent := float64(len(answered)) / float64(len(Catalog)) * 100
	switch {
	case percent >= goodCoveragePercent:
		t.Notef("good coverage: %d/%d endpoints (%.1f%%)", len(answered), len(Catalog), percent)
	case percent >= moderateCoveragePercent:
		t.Warnf("moderate coverage: %d/%d endpoints (%.1f%%)", len(answered), len(Catalog), percent)
	default:
		t.Errorf("low coverage: %d/%d endpoints (%.1f%%)", len(answered), len(Catalog), percent)
	}
}

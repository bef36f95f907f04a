package framework

// Precondition is something that must be true before a test case can do anything useful,
// such as the presence of an access token or of an ID created by an earlier test.
type Precondition struct {
	// Description is used as the skip reason when the precondition is not satisfied.
	Description string
	Satisfied   func() bool
}

// TestCase describes one named check. Cases are contributed by domain packages and executed
// by RunPhases.
type TestCase struct {
	Name     string
	Requires []Precondition
	Action   func(*Context)
}

// Phase is an ordered group of related test cases.
type Phase struct {
	Name  string
	Cases []TestCase
}

func (tc TestCase) unmetPreconditions() []string {
	var unmet []string
	for _, p := range tc.Requires {
		if p.Satisfied != nil && !p.Satisfied() {
			unmet = append(unmet, p.Description)
		}
	}
	return unmet
}

// CaseCount returns the total number of cases in the given phases.
func CaseCount(phases []Phase) int {
	n := 0
	for _, p := range phases {
		n += len(p.Cases)
	}
	return n
}

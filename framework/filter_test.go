package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	assert.False(t, f.IsDefined())
	assert.True(t, f.AsFilter(TestID{Path: []string{"health", "health check"}}))

	require.NoError(t, f.MustMatch.Set("^hair fall logs/"))
	require.NoError(t, f.MustNotMatch.Set("delete"))
	assert.True(t, f.IsDefined())

	assert.True(t, f.AsFilter(TestID{Path: []string{"hair fall logs", "create"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"hair fall logs", "delete"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"interventions", "create"}}))
	assert.Equal(t, []string{"^hair fall logs/"}, f.MustMatch.Patterns())
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("cleanup"))
	PrintFilterDescription(&buf, f)
	assert.Contains(t, buf.String(), `skip any matching "cleanup"`)
	assert.NotContains(t, buf.String(), "not matching")
}

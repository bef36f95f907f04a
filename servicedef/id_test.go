package servicedef

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDecodesStringOrNumber(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a1b2"}`), &u))
	assert.Equal(t, ID("a1b2"), u.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":123}`), &u))
	assert.Equal(t, ID("123"), u.ID)
	assert.True(t, u.ID.IsDefined())

	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &u))
	assert.False(t, u.ID.IsDefined())
}

func TestIDRejectsOtherTypes(t *testing.T) {
	var u User
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &u))
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &u))
}

func TestIDEncodesAsString(t *testing.T) {
	data, err := json.Marshal(AccessSession{ID: "7", Status: "PENDING"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"7","status":"PENDING","requestedAt":"","professionalId":""}`, string(data))
}

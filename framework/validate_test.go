package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasFields(t *testing.T) {
	for _, p := range []struct {
		name    string
		body    string
		fields  []string
		ok      bool
		missing []string
	}{
		{"object with all fields", `{"id":"1","userId":"2","extra":true}`, []string{"id", "userId"}, true, nil},
		{"object missing fields", `{"userId":"2"}`, []string{"id", "userId", "date"}, false, []string{"id", "date"}},
		{"null field counts as present", `{"id":null}`, []string{"id"}, true, nil},
		{"empty object", `{}`, []string{"id"}, false, []string{"id"}},
		{"list checks first element only", `[{"id":"1"},{"other":2}]`, []string{"id"}, true, nil},
		{"list with missing field in first element", `[{"other":1},{"id":"1"}]`, []string{"id"}, false, []string{"id"}},
		{"empty list is valid", `[]`, []string{"id"}, true, nil},
		{"list of scalars", `[1,2]`, []string{"id"}, false, []string{msgListNotObjects}},
		{"scalar", `"ok"`, []string{"id"}, false, []string{msgNotObjectOrList}},
		{"null", `null`, []string{"id"}, false, []string{msgNotObjectOrList}},
		{"invalid JSON", `{"id":`, []string{"id"}, false, []string{msgInvalidJSON}},
		{"empty body", ``, []string{"id"}, false, []string{msgInvalidJSON}},
	} {
		t.Run(p.name, func(t *testing.T) {
			ok, missing := HasFields([]byte(p.body), p.fields...)
			assert.Equal(t, p.ok, ok)
			assert.Equal(t, p.missing, missing)
		})
	}
}

func TestParseList(t *testing.T) {
	v, ok := ParseList([]byte(`[{"id":"a"},{"id":"b"}]`))
	assert.True(t, ok)
	assert.Equal(t, 2, v.Count())

	_, ok = ParseList([]byte(`{"id":"a"}`))
	assert.False(t, ok)
}

func TestParseObject(t *testing.T) {
	v, ok := ParseObject([]byte(`{"user":"anonymous"}`))
	assert.True(t, ok)
	assert.Equal(t, "anonymous", v.GetByKey("user").StringValue())

	_, ok = ParseObject([]byte(`[]`))
	assert.False(t, ok)
}

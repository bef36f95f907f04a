package hairtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEscapesPathParams(t *testing.T) {
	assert.Equal(t, "/api/v1/me/hair-fall-logs/abc", EndpointGetHairFallLog.Expand(map[string]string{"id": "abc"}))
	assert.Equal(t, "/api/v1/me/hair-fall-logs/a%2Fb", EndpointGetHairFallLog.Expand(map[string]string{"id": "a/b"}))
	assert.Equal(t, "/api/v1/me/hair-fall-logs/{id}", EndpointGetHairFallLog.Expand(nil))
}

func TestCatalogHasNoDuplicates(t *testing.T) {
	seen := make(map[Endpoint]bool)
	for _, e := range Catalog {
		assert.False(t, seen[e], "duplicate endpoint %s", e)
		seen[e] = true
	}
	assert.Len(t, Catalog, 48)
}

func TestEndpointString(t *testing.T) {
	assert.Equal(t, "POST /api/v1/auth/login", EndpointLogin.String())
}

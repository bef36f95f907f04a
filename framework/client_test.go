package framework

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsJSONBodyAndBearerToken(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(201, nil, []byte(`{"id":"abc"}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewServiceClient(server.URL+"/", time.Second, nil)
		resp, err := client.Do(context.Background(), Request{
			Method:      "POST",
			Path:        "/api/v1/me/hair-fall-logs",
			Body:        map[string]interface{}{"count": 45},
			BearerToken: "t1",
		}, nil)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 201, resp.StatusCode)
		assert.JSONEq(t, `{"id":"abc"}`, string(resp.Body))

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/api/v1/me/hair-fall-logs", r.Request.URL.Path)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer t1", r.Request.Header.Get("Authorization"))
		assert.JSONEq(t, `{"count":45}`, string(r.Body))
	})
}

func TestClientOmitsBodyAndAuthWhenNotGiven(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewServiceClient(server.URL, time.Second, nil)
		_, err := client.Do(context.Background(), Request{
			Method: "GET",
			Path:   "/api/v1/me/hair-fall-logs",
			Query:  url.Values{"limit": {"10"}, "offset": {"0"}},
			Body:   map[string]string{"ignored": "for GET"},
		}, nil)
		require.NoError(t, err)

		r := <-requestsCh
		assert.Equal(t, "limit=10&offset=0", r.Request.URL.RawQuery)
		assert.Empty(t, r.Request.Header.Get("Authorization"))
		assert.Empty(t, r.Request.Header.Get("Content-Type"))
		assert.Empty(t, r.Body)
	})
}

func TestClientExplicitHeaderOverridesBearerToken(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(401))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewServiceClient(server.URL, time.Second, nil)
		resp, err := client.Do(context.Background(), Request{
			Method:      "GET",
			Path:        "/x",
			BearerToken: "good",
			Header:      http.Header{"Authorization": {"Bearer invalid.jwt.token"}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)

		r := <-requestsCh
		assert.Equal(t, []string{"Bearer invalid.jwt.token"}, r.Request.Header.Values("Authorization"))
	})
}

func TestClientReturnsErrorForTransportFailure(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	server.Close()

	var debug CapturingLogger
	client := NewServiceClient(server.URL, time.Second, nil)
	resp, err := client.Do(context.Background(), Request{Method: "GET", Path: "/api/v1/health"}, &debug)
	assert.Error(t, err)
	assert.Nil(t, resp)
	messages := debug.Output().Messages()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1], "request failed")
}

func TestClientReturnsErrorForTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		client := NewServiceClient(server.URL, 50*time.Millisecond, nil)
		resp, err := client.Do(context.Background(), Request{Method: "GET", Path: "/"}, nil)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestClientKeepsCookiesAcrossRequests(t *testing.T) {
	var sawCookie bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err == nil {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := NewServiceClient(server.URL, time.Second, nil)
		for i := 0; i < 2; i++ {
			_, err := client.Do(context.Background(), Request{Method: "GET", Path: "/"}, nil)
			require.NoError(t, err)
		}
	})
	assert.True(t, sawCookie)
}

func TestResponseErrorMessage(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"message": "email already registered"})
	assert.Equal(t, "email already registered", (&Response{Body: body}).ErrorMessage())
	assert.Equal(t, "bad", (&Response{Body: []byte(`{"error":"bad"}`)}).ErrorMessage())
	assert.Equal(t, "plain text", (&Response{Body: []byte("plain text")}).ErrorMessage())
	assert.Equal(t, "", (*Response)(nil).ErrorMessage())
}

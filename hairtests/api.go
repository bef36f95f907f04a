package hairtests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

// T represents a single test case in the hair-health contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. The underlying test state is provided by our lower-level
// framework package.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if
// it were a *testing.T. There are also helpers for the checks that almost every test makes,
// such as requireStatus and requireFields, which fail the test and immediately exit it.
type T struct {
	context *framework.Context
	env     *environment
}

type environment struct {
	client  *framework.ServiceClient
	session *Session
	options Options
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods
// in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Fatalf fails the test with a message and immediately exits it.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
	t.context.FailNow()
}

// Warnf records a warning. Unless the test also fails, its outcome will be WARN.
func (t *T) Warnf(format string, args ...interface{}) {
	t.context.Warnf(format, args...)
}

// Notef sets the message that is reported if the test passes.
func (t *T) Notef(format string, args ...interface{}) {
	t.context.Notef(format, args...)
}

// Debug logs some debug output for the test. The output will be passed to the test logger
// at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) Session() *Session {
	return t.env.session
}

// CallOption modifies a request made with Call.
type CallOption func(*callParams)

type callParams struct {
	request    framework.Request
	pathParams map[string]string
	auth       bool
}

// WithAuth sends the session's current access token, if there is one.
func WithAuth() CallOption {
	return func(p *callParams) { p.auth = true }
}

// WithBody sends a JSON request body.
func WithBody(body interface{}) CallOption {
	return func(p *callParams) { p.request.Body = body }
}

// WithQuery adds a query parameter.
func WithQuery(name string, value interface{}) CallOption {
	return func(p *callParams) {
		if p.request.Query == nil {
			p.request.Query = make(url.Values)
		}
		p.request.Query.Add(name, fmt.Sprint(value))
	}
}

// WithHeader sets a request header, replacing any value that the client would otherwise send.
func WithHeader(name, value string) CallOption {
	return func(p *callParams) {
		if p.request.Header == nil {
			p.request.Header = make(http.Header)
		}
		p.request.Header.Set(name, value)
	}
}

// WithPathParams fills in path placeholders.
func WithPathParams(params map[string]string) CallOption {
	return func(p *callParams) {
		for k, v := range params {
			p.pathParams[k] = v
		}
	}
}

// WithID fills in the "{id}" path placeholder.
func WithID(id servicedef.ID) CallOption {
	return WithPathParams(map[string]string{"id": id.String()})
}

// Call sends one request to the service. It returns nil if no HTTP response was received;
// that is not a test failure by itself, so the caller decides what it means.
//
// The exchange is written to the test's debug output, and the response body is attached to
// the test result.
func (t *T) Call(e Endpoint, options ...CallOption) *framework.Response {
	p := callParams{
		request:    framework.Request{Method: e.Method},
		pathParams: make(map[string]string),
	}
	for _, o := range options {
		o(&p)
	}
	if p.auth {
		p.request.BearerToken = t.env.session.AccessToken.StringValue()
	}
	p.request.Path = e.Expand(p.pathParams)

	resp, err := t.env.client.Do(context.Background(), p.request, t.context.DebugLogger())
	if err != nil {
		return nil
	}
	t.env.session.recordAnswer(e)
	t.context.Attach(resp.Body)
	return resp
}

func (t *T) requireResponse(resp *framework.Response) {
	if resp == nil {
		t.Fatalf("no response")
	}
}

// requireStatus fails the test unless there was a response with one of the given status
// codes. With no codes, 200 is expected.
func (t *T) requireStatus(resp *framework.Response, codes ...int) {
	t.requireResponse(resp)
	if len(codes) == 0 {
		codes = []int{http.StatusOK}
	}
	if !hasStatus(resp, codes...) {
		t.Fatalf("expected status %s, got %d: %s", describeCodes(codes), resp.StatusCode, resp.ErrorMessage())
	}
}

// requireFields fails the test unless the response body has all of the given properties.
func (t *T) requireFields(resp *framework.Response, fields ...string) {
	if ok, missing := framework.HasFields(resp.Body, fields...); !ok {
		t.Fatalf("invalid response schema, missing: %s", strings.Join(missing, ", "))
	}
}

// requireList fails the test unless the response body is a JSON array, and returns its length.
func (t *T) requireList(resp *framework.Response) int {
	list, ok := framework.ParseList(resp.Body)
	if !ok {
		t.Fatalf("response is not a list")
	}
	return list.Count()
}

// decode parses the response body into a typed record, failing the test if it cannot.
func (t *T) decode(resp *framework.Response, target interface{}) {
	if err := json.Unmarshal(resp.Body, target); err != nil {
		t.Fatalf("could not parse response: %s", err)
	}
}

// requireSuccess is the usual sequence for a call that should succeed: a 200 response whose
// body has the given properties.
func (t *T) requireSuccess(resp *framework.Response, fields ...string) {
	t.requireStatus(resp)
	if len(fields) != 0 {
		t.requireFields(resp, fields...)
	}
}

// requireCreated is like requireSuccess but also accepts 201.
func (t *T) requireCreated(resp *framework.Response, fields ...string) {
	t.requireStatus(resp, http.StatusOK, http.StatusCreated)
	if len(fields) != 0 {
		t.requireFields(resp, fields...)
	}
}

func (t *T) requireResource(kind ResourceKind) servicedef.ID {
	id, ok := t.env.session.Resource(kind)
	if !ok {
		t.context.SkipWithReason(fmt.Sprintf("no %s ID", kind))
	}
	return id
}

func hasStatus(resp *framework.Response, codes ...int) bool {
	if resp == nil {
		return false
	}
	for _, c := range codes {
		if resp.StatusCode == c {
			return true
		}
	}
	return false
}

func describeCodes(codes []int) string {
	ss := make([]string, 0, len(codes))
	for _, c := range codes {
		ss = append(ss, strconv.Itoa(c))
	}
	return strings.Join(ss, " or ")
}

package hairtests

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hairhealth/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Credentials identify the account that a test run registers. They are derived from a
// timestamp so that repeated runs against the same service do not collide.
type Credentials struct {
	// Token is the unique part of every generated name.
	Token    string
	Email    string
	Password string
	Username string
}

// NewCredentials returns the credentials for the given timestamp token.
func NewCredentials(token string) Credentials {
	return Credentials{
		Token:    token,
		Email:    fmt.Sprintf("api_test_%s@hairhealth.com", token),
		Password: fmt.Sprintf("SecurePass_%s123!", token),
		Username: fmt.Sprintf("api_test_user_%s", token),
	}
}

// CredentialsForTime returns the credentials for a run started at the given time.
func CredentialsForTime(t time.Time) Credentials {
	return NewCredentials(strconv.FormatInt(t.Unix(), 10))
}

// ResourceKind identifies one of the resources that a test can create and later tests use.
type ResourceKind int

const (
	HairFallLog ResourceKind = iota
	Intervention
	PhotoMetadata
	SharingSession
	AccessSession
)

func (k ResourceKind) String() string {
	switch k {
	case HairFallLog:
		return "hair fall log"
	case Intervention:
		return "intervention"
	case PhotoMetadata:
		return "photo metadata"
	case SharingSession:
		return "medical sharing session"
	case AccessSession:
		return "medical access session"
	default:
		return fmt.Sprintf("resource %d", int(k))
	}
}

// Session is the state carried from one test case to the next within a run: the account's
// credentials and tokens, and the IDs of resources created so far.
//
// A value that has not been obtained, or that was cleared, is undefined rather than empty.
// Session is not safe for concurrent use; test cases run one at a time.
type Session struct {
	Credentials  Credentials
	AccessToken  ldvalue.OptionalString
	RefreshToken ldvalue.OptionalString
	UserID       ldvalue.OptionalString

	resources map[ResourceKind]servicedef.ID
	answered  map[Endpoint]struct{}
}

func NewSession(credentials Credentials) *Session {
	return &Session{
		Credentials: credentials,
		resources:   make(map[ResourceKind]servicedef.ID),
		answered:    make(map[Endpoint]struct{}),
	}
}

// SetTokens stores the tokens from an authentication response. An empty refresh token leaves
// the current one in place, since some responses only renew the access token.
func (s *Session) SetTokens(accessToken, refreshToken string) {
	s.AccessToken = optional(accessToken)
	if refreshToken != "" {
		s.RefreshToken = ldvalue.NewOptionalString(refreshToken)
	}
}

func (s *Session) ClearTokens() {
	s.AccessToken = ldvalue.OptionalString{}
	s.RefreshToken = ldvalue.OptionalString{}
}

func (s *Session) SetUserID(id servicedef.ID) {
	s.UserID = optional(id.String())
}

// Clear forgets everything that refers to the account, after the account has been deleted.
func (s *Session) Clear() {
	s.ClearTokens()
	s.UserID = ldvalue.OptionalString{}
	s.resources = make(map[ResourceKind]servicedef.ID)
}

func (s *Session) SetResource(kind ResourceKind, id servicedef.ID) {
	if id.IsDefined() {
		s.resources[kind] = id
	} else {
		delete(s.resources, kind)
	}
}

func (s *Session) Resource(kind ResourceKind) (servicedef.ID, bool) {
	id, ok := s.resources[kind]
	return id, ok
}

func (s *Session) ClearResource(kind ResourceKind) {
	delete(s.resources, kind)
}

func (s *Session) recordAnswer(e Endpoint) {
	s.answered[e] = struct{}{}
}

// Answered returns the catalog endpoints that have returned an HTTP response at least once
// in this session, in catalog order.
func (s *Session) Answered() []Endpoint {
	var ret []Endpoint
	for _, e := range Catalog {
		if _, ok := s.answered[e]; ok {
			ret = append(ret, e)
		}
	}
	return ret
}

func optional(s string) ldvalue.OptionalString {
	if s == "" {
		return ldvalue.OptionalString{}
	}
	return ldvalue.NewOptionalString(s)
}

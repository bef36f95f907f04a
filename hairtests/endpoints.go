package hairtests

import (
	"net/http"
	"net/url"
	"strings"
)

// Endpoint is one operation of the hair-health API. Path may contain placeholders such as
// "{id}", which are filled in by Expand.
type Endpoint struct {
	Method string
	Path   string
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

// Expand returns the path with each "{name}" placeholder replaced by the path-escaped value
// of params[name]. Placeholders with no value are left as they are.
func (e Endpoint) Expand(params map[string]string) string {
	path := e.Path
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", url.PathEscape(v))
	}
	return path
}

func get(path string) Endpoint    { return Endpoint{Method: http.MethodGet, Path: path} }
func post(path string) Endpoint   { return Endpoint{Method: http.MethodPost, Path: path} }
func put(path string) Endpoint    { return Endpoint{Method: http.MethodPut, Path: path} }
func remove(path string) Endpoint { return Endpoint{Method: http.MethodDelete, Path: path} }

const (
	apiPrefix         = "/api/v1"
	hairFallLogsPath  = apiPrefix + "/me/hair-fall-logs"
	interventionsPath = apiPrefix + "/me/interventions"
	photosPath        = apiPrefix + "/me/progress-photos"
	sharingPath       = apiPrefix + "/me/medical-sharing/sessions"
	accessPath        = apiPrefix + "/professionals/me/medical-access/sessions"
	usersPath         = apiPrefix + "/users"
	devPath           = apiPrefix + "/dev"
)

var (
	EndpointHealth    = get(apiPrefix + "/health")
	EndpointPublic    = get(apiPrefix + "/test/public")
	EndpointProtected = get(apiPrefix + "/test/protected")

	EndpointRegister     = post(apiPrefix + "/auth/register")
	EndpointLogin        = post(apiPrefix + "/auth/login")
	EndpointAuthMe       = get(apiPrefix + "/auth/me")
	EndpointRefreshToken = post(apiPrefix + "/auth/refresh-token")
	EndpointLogout       = post(apiPrefix + "/auth/logout")

	EndpointListHairFallLogs     = get(hairFallLogsPath)
	EndpointCreateHairFallLog    = post(hairFallLogsPath)
	EndpointGetHairFallLog       = get(hairFallLogsPath + "/{id}")
	EndpointUpdateHairFallLog    = put(hairFallLogsPath + "/{id}")
	EndpointDeleteHairFallLog    = remove(hairFallLogsPath + "/{id}")
	EndpointHairFallStats        = get(hairFallLogsPath + "/stats")
	EndpointHairFallLogDateRange = get(hairFallLogsPath + "/date-range")

	EndpointListInterventions      = get(interventionsPath)
	EndpointCreateIntervention     = post(interventionsPath)
	EndpointGetIntervention        = get(interventionsPath + "/{id}")
	EndpointUpdateIntervention     = put(interventionsPath + "/{id}")
	EndpointLogApplication         = post(interventionsPath + "/{id}/log-application")
	EndpointListApplications       = get(interventionsPath + "/{id}/applications")
	EndpointAdherenceStats         = get(interventionsPath + "/{id}/adherence-stats")
	EndpointActiveInterventions    = get(interventionsPath + "/active")
	EndpointDeactivateIntervention = post(interventionsPath + "/{id}/deactivate")

	EndpointListPhotos     = get(photosPath)
	EndpointPhotoUploadURL = post(photosPath + "/upload-url")
	EndpointFinalizePhoto  = post(photosPath + "/{id}/finalize")
	EndpointGetPhoto       = get(photosPath + "/{id}")
	EndpointPhotoViewURL   = get(photosPath + "/{id}/view-url")
	EndpointPhotoStats     = get(photosPath + "/stats")
	EndpointDeletePhoto    = remove(photosPath + "/{id}")

	EndpointCreateSharingSession = post(sharingPath)
	EndpointListSharingSessions  = get(sharingPath)
	EndpointGetSharingSession    = get(sharingPath + "/{id}")
	EndpointRevokeSharingSession = post(sharingPath + "/{id}/revoke")

	EndpointRequestAccess      = post(accessPath + "/{id}/request-access")
	EndpointListAccessSessions = get(accessPath)
	EndpointGetAccessSession   = get(accessPath + "/{id}")
	EndpointApproveAccess      = post(accessPath + "/{id}/approve")
	EndpointDenyAccess         = post(accessPath + "/{id}/deny")

	EndpointGetUser        = get(usersPath + "/{id}")
	EndpointGetMe          = get(usersPath + "/me")
	EndpointUpdateMe       = put(usersPath + "/me")
	EndpointDeleteMe       = remove(usersPath + "/me")
	EndpointCreateTestUser = post(usersPath + "/test")

	EndpointSetupTestUser         = post(devPath + "/setup-test-user")
	EndpointSetupPhotoData        = post(devPath + "/setup-photo-data")
	EndpointSetupInterventionData = post(devPath + "/setup-intervention-data")
)

// Catalog is every endpoint of the API that the suite knows about. Coverage is measured
// against it.
var Catalog = []Endpoint{
	EndpointHealth,
	EndpointPublic,
	EndpointProtected,

	EndpointRegister,
	EndpointLogin,
	EndpointAuthMe,
	EndpointRefreshToken,
	EndpointLogout,

	EndpointListHairFallLogs,
	EndpointCreateHairFallLog,
	EndpointGetHairFallLog,
	EndpointUpdateHairFallLog,
	EndpointDeleteHairFallLog,
	EndpointHairFallStats,
	EndpointHairFallLogDateRange,

	EndpointListInterventions,
	EndpointCreateIntervention,
	EndpointGetIntervention,
	EndpointUpdateIntervention,
	EndpointLogApplication,
	EndpointListApplications,
	EndpointAdherenceStats,
	EndpointActiveInterventions,
	EndpointDeactivateIntervention,

	EndpointListPhotos,
	EndpointPhotoUploadURL,
	EndpointFinalizePhoto,
	EndpointGetPhoto,
	EndpointPhotoViewURL,
	EndpointPhotoStats,
	EndpointDeletePhoto,

	EndpointCreateSharingSession,
	EndpointListSharingSessions,
	EndpointGetSharingSession,
	EndpointRevokeSharingSession,

	EndpointRequestAccess,
	EndpointListAccessSessions,
	EndpointGetAccessSession,
	EndpointApproveAccess,
	EndpointDenyAccess,

	EndpointGetUser,
	EndpointGetMe,
	EndpointUpdateMe,
	EndpointDeleteMe,
	EndpointCreateTestUser,

	EndpointSetupTestUser,
	EndpointSetupPhotoData,
	EndpointSetupInterventionData,
}

package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Response bodies for the hair-health API. Only properties that the tests look at are
// declared; shape checks on the raw body are done separately.

type User struct {
	ID              ID     `json:"id"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// ProtectedEndpointResponse is returned by the protected test endpoint. A "user" of
// "anonymous" means the service let an unauthenticated request through.
type ProtectedEndpointResponse struct {
	User string `json:"user"`
}

type HairFallLog struct {
	ID          ID                  `json:"id"`
	UserID      ID                  `json:"userId"`
	Date        string              `json:"date"`
	Count       ldvalue.OptionalInt `json:"count"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
}

type Intervention struct {
	ID          ID     `json:"id"`
	UserID      ID     `json:"userId"`
	Type        string `json:"type"`
	ProductName string `json:"productName"`
	Frequency   string `json:"frequency"`
	IsActive    bool   `json:"isActive"`
}

type InterventionApplication struct {
	ID             ID     `json:"id"`
	InterventionID ID     `json:"interventionId"`
	UserID         ID     `json:"userId"`
	Timestamp      string `json:"timestamp"`
}

type PhotoUploadResponse struct {
	PhotoMetadataID ID     `json:"photoMetadataId"`
	UploadURL       string `json:"uploadUrl"`
	ExpiresAt       string `json:"expiresAt"`
}

type SharingSession struct {
	SessionID      ID     `json:"sessionId"`
	ProfessionalID ID     `json:"professionalId"`
	AccessURL      string `json:"accessUrl"`
	ExpiresAt      string `json:"expiresAt"`
}

type AccessSession struct {
	ID             ID     `json:"id"`
	Status         string `json:"status"`
	RequestedAt    string `json:"requestedAt"`
	ProfessionalID ID     `json:"professionalId"`
}

type DevSetupResponse struct {
	UserID      ID     `json:"userId"`
	AccessToken string `json:"accessToken"`
}

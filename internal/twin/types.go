package twin

import "time"

type user struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	password        string
}

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         user   `json:"user"`
}

type hairFallLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        string    `json:"date"`
	Count       int       `json:"count"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type hairFallStats struct {
	TotalLogs    int     `json:"totalLogs"`
	TotalCount   int     `json:"totalCount"`
	AverageCount float64 `json:"averageCount"`
	RecentTrend  string  `json:"recentTrend"`
	LastLogDate  *string `json:"lastLogDate"`
}

type intervention struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Type            string    `json:"type"`
	ProductName     string    `json:"productName"`
	DosageAmount    string    `json:"dosageAmount,omitempty"`
	Frequency       string    `json:"frequency"`
	ApplicationTime string    `json:"applicationTime,omitempty"`
	StartDate       string    `json:"startDate"`
	EndDate         *string   `json:"endDate"`
	IsActive        bool      `json:"isActive"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type application struct {
	ID             string    `json:"id"`
	InterventionID string    `json:"interventionId"`
	UserID         string    `json:"userId"`
	Timestamp      time.Time `json:"timestamp"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type adherenceStats struct {
	InterventionID       string  `json:"interventionId"`
	ExpectedApplications int     `json:"expectedApplications"`
	ActualApplications   int     `json:"actualApplications"`
	AdherenceRate        float64 `json:"adherenceRate"`
	AdherencePercentage  float64 `json:"adherencePercentage"`
	AdherenceLevel       string  `json:"adherenceLevel"`
	DaysSinceStart       int     `json:"daysSinceStart"`
}

type photo struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	Filename          string     `json:"filename"`
	Angle             string     `json:"angle"`
	CaptureDate       string     `json:"captureDate"`
	FileSize          *int64     `json:"fileSize"`
	UploadedAt        *time.Time `json:"uploadedAt"`
	IsDeleted         bool       `json:"isDeleted"`
	CreatedAt         time.Time  `json:"createdAt"`
	encryptionKeyInfo string
}

type photoUploadResponse struct {
	PhotoMetadataID string    `json:"photoMetadataId"`
	UploadURL       string    `json:"uploadUrl"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

type photoViewResponse struct {
	DownloadURL       string    `json:"downloadUrl"`
	EncryptionKeyInfo string    `json:"encryptionKeyInfo"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

type photoStats struct {
	TotalPhotos           int              `json:"totalPhotos"`
	PhotosByAngle         map[string]int   `json:"photosByAngle"`
	LatestPhotosByAngle   map[string]photo `json:"latestPhotosByAngle"`
	TotalStorageUsedBytes int64            `json:"totalStorageUsedBytes"`
}

type sharingSession struct {
	SessionID         string    `json:"sessionId"`
	UserID            string    `json:"userId"`
	ProfessionalID    string    `json:"professionalId"`
	ProfessionalEmail string    `json:"professionalEmail"`
	AccessURL         string    `json:"accessUrl"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes,omitempty"`
	ExpiresAt         time.Time `json:"expiresAt"`
	CreatedAt         time.Time `json:"createdAt"`
	RevokeReason      string    `json:"revokeReason,omitempty"`
}

type accessSession struct {
	ID             string     `json:"id"`
	ProfessionalID string     `json:"professionalId"`
	Status         string     `json:"status"`
	Reason         string     `json:"reason,omitempty"`
	RequestedAt    time.Time  `json:"requestedAt"`
	RespondedAt    *time.Time `json:"respondedAt"`
	ownerID        string
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

package servicedef

// Request bodies for the hair-health API. Field names match the JSON property names the
// service expects.

type RegisterParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenParams struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateHairFallLogParams struct {
	Date        string `json:"date"`
	Count       int    `json:"count"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

type UpdateHairFallLogParams struct {
	Count       int    `json:"count"`
	Description string `json:"description,omitempty"`
}

type CreateInterventionParams struct {
	Type            string `json:"type"`
	ProductName     string `json:"productName"`
	DosageAmount    string `json:"dosageAmount,omitempty"`
	Frequency       string `json:"frequency"`
	ApplicationTime string `json:"applicationTime,omitempty"`
	StartDate       string `json:"startDate"`
	Notes           string `json:"notes,omitempty"`
}

type UpdateInterventionParams struct {
	ProductName  string `json:"productName,omitempty"`
	DosageAmount string `json:"dosageAmount,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
}

type LogApplicationParams struct {
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes,omitempty"`
}

type PhotoUploadParams struct {
	Filename          string `json:"filename"`
	Angle             string `json:"angle"`
	CaptureDate       string `json:"captureDate"`
	EncryptionKeyInfo string `json:"encryptionKeyInfo"`
}

type FinalizePhotoParams struct {
	FileSize int64 `json:"fileSize"`
}

type CreateSharingSessionParams struct {
	ProfessionalEmail   string `json:"professionalEmail"`
	AccessDurationHours int    `json:"accessDurationHours"`
	Notes               string `json:"notes,omitempty"`
}

type RevokeSharingSessionParams struct {
	Reason string `json:"reason"`
}

type RequestAccessParams struct {
	ProfessionalID string `json:"professionalId"`
	Reason         string `json:"reason"`
}

type UpdateUserParams struct {
	Username string `json:"username"`
}

// Hair fall categories that the service accepts.
const (
	CategoryShower = "SHOWER"
	CategoryPillow = "PILLOW"
	CategoryComb   = "COMB"
	CategoryBrush  = "BRUSH"
	CategoryOther  = "OTHER"
)

// Intervention types that the service accepts.
const (
	InterventionTopical    = "TOPICAL"
	InterventionOral       = "ORAL"
	InterventionSupplement = "SUPPLEMENT"
	InterventionProcedure  = "PROCEDURE"
)

// Progress photo angles.
const (
	AngleVertex   = "VERTEX"
	AngleHairline = "HAIRLINE"
	AngleTemples  = "TEMPLES"
	AngleCrown    = "CROWN"
)

// DateFormat is the layout of date-only fields such as a hair fall log's date.
const DateFormat = "2006-01-02"

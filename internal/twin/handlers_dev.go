package twin

import (
	"fmt"
	"net/http"

	"github.com/hairhealth/api-contract-tests/servicedef"
)

const (
	devUserEmail    = "dev@hairhealth.test"
	devUserPassword = "dev_password_123"
)

type devSetupResponse struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
}

type devDataResponse struct {
	Message string   `json:"message"`
	UserID  string   `json:"userId"`
	Created []string `json:"created"`
}

// setupTestUser returns a token for the shared development account, creating the account on
// first use.
func (s *Server) setupTestUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.findUserByEmail(devUserEmail)
	if !ok {
		username := "dev_user"
		if u, ok = s.createUser(w, registerRequest{Email: devUserEmail, Password: devUserPassword, Username: &username}); !ok {
			return
		}
	}
	token, err := s.tokens.issue(u.ID, accessTokenType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, devSetupResponse{UserID: u.ID, AccessToken: token})
}

func (s *Server) devTargetUser(w http.ResponseWriter, r *http.Request) (user, bool) {
	id := r.URL.Query().Get("userId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return user{}, false
	}
	u, ok := s.users.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "user not found")
		return user{}, false
	}
	return u, true
}

// setupPhotoData adds one finalized photo per angle to the user's account.
func (s *Server) setupPhotoData(w http.ResponseWriter, r *http.Request) {
	u, ok := s.devTargetUser(w, r)
	if !ok {
		return
	}
	today := s.now().UTC().Format(servicedef.DateFormat)
	var created []string
	for _, angle := range []string{servicedef.AngleVertex, servicedef.AngleHairline, servicedef.AngleTemples, servicedef.AngleCrown} {
		p := s.addPhoto(u.ID, photoUploadRequest{
			Filename:          fmt.Sprintf("sample_%s.jpg.enc", angle),
			Angle:             angle,
			CaptureDate:       today,
			EncryptionKeyInfo: "sample_key",
		})
		s.photos.update(p.ID, func(p *photo) {
			size, uploaded := int64(512000), s.now().UTC()
			p.FileSize = &size
			p.UploadedAt = &uploaded
		})
		created = append(created, p.ID)
	}
	writeJSON(w, http.StatusOK, devDataResponse{Message: "photo data set up", UserID: u.ID, Created: created})
}

// setupInterventionData adds a sample topical and oral intervention to the user's account.
func (s *Server) setupInterventionData(w http.ResponseWriter, r *http.Request) {
	u, ok := s.devTargetUser(w, r)
	if !ok {
		return
	}
	today := s.now().UTC().Format(servicedef.DateFormat)
	str := func(v string) *string { return &v }
	samples := []interventionRequest{
		{Type: str(servicedef.InterventionTopical), ProductName: str("Sample Minoxidil 5%"),
			DosageAmount: str("1ml"), Frequency: str("Twice Daily"), StartDate: str(today)},
		{Type: str(servicedef.InterventionOral), ProductName: str("Sample Finasteride"),
			DosageAmount: str("1mg"), Frequency: str("Daily"), StartDate: str(today)},
	}
	var created []string
	for _, req := range samples {
		created = append(created, s.addIntervention(u.ID, req).ID)
	}
	writeJSON(w, http.StatusOK, devDataResponse{Message: "intervention data set up", UserID: u.ID, Created: created})
}

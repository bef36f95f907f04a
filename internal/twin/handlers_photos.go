package twin

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hairhealth/api-contract-tests/servicedef"
)

const storageBaseURL = "https://storage.twin.invalid/progress-photos"

var photoAngles = map[string]bool{
	servicedef.AngleVertex:   true,
	servicedef.AngleHairline: true,
	servicedef.AngleTemples:  true,
	servicedef.AngleCrown:    true,
}

type photoUploadRequest struct {
	Filename          string `json:"filename"`
	Angle             string `json:"angle"`
	CaptureDate       string `json:"captureDate"`
	EncryptionKeyInfo string `json:"encryptionKeyInfo"`
}

type finalizePhotoRequest struct {
	FileSize int64 `json:"fileSize"`
}

// ownPhoto finds a photo of the current user that has not been deleted.
func (s *Server) ownPhoto(w http.ResponseWriter, r *http.Request) (photo, bool) {
	p, ok := s.photos.get(chi.URLParam(r, "id"))
	if !ok || p.UserID != currentUserID(r) || p.IsDeleted {
		writeError(w, http.StatusNotFound, "not_found", "photo not found")
		return photo{}, false
	}
	return p, true
}

func (s *Server) userPhotos(userID string) []photo {
	return s.photos.filter(func(p photo) bool { return p.UserID == userID && !p.IsDeleted })
}

func (s *Server) listPhotos(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := paging(w, r)
	if !ok {
		return
	}
	angle := r.URL.Query().Get("angle")
	userID := currentUserID(r)
	photos := s.photos.filter(func(p photo) bool {
		return p.UserID == userID && !p.IsDeleted && (angle == "" || p.Angle == angle)
	})
	writeJSON(w, http.StatusOK, page(photos, offset, limit))
}

func (s *Server) requestUploadURL(w http.ResponseWriter, r *http.Request) {
	var req photoUploadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch {
	case strings.TrimSpace(req.Filename) == "":
		writeError(w, http.StatusBadRequest, "validation_error", "filename is required")
		return
	case !photoAngles[req.Angle]:
		writeError(w, http.StatusBadRequest, "validation_error", "unknown angle")
		return
	case req.CaptureDate == "":
		writeError(w, http.StatusBadRequest, "validation_error", "captureDate is required")
		return
	}
	p := s.addPhoto(currentUserID(r), req)
	writeJSON(w, http.StatusOK, photoUploadResponse{
		PhotoMetadataID: p.ID,
		UploadURL:       fmt.Sprintf("%s/%s/%s?op=upload", storageBaseURL, p.UserID, p.ID),
		ExpiresAt:       s.now().UTC().Add(signedURLTTL),
	})
}

func (s *Server) addPhoto(userID string, req photoUploadRequest) photo {
	p := photo{
		ID:                uuid.NewString(),
		UserID:            userID,
		Filename:          req.Filename,
		Angle:             req.Angle,
		CaptureDate:       req.CaptureDate,
		CreatedAt:         s.now().UTC(),
		encryptionKeyInfo: req.EncryptionKeyInfo,
	}
	s.photos.set(p.ID, p)
	return p
}

func (s *Server) finalizePhoto(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPhoto(w, r)
	if !ok {
		return
	}
	var req finalizePhotoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.FileSize <= 0 {
		writeError(w, http.StatusBadRequest, "validation_error", "fileSize must be positive")
		return
	}
	p, _ = s.photos.update(p.ID, func(p *photo) {
		uploaded := s.now().UTC()
		size := req.FileSize
		p.FileSize = &size
		p.UploadedAt = &uploaded
	})
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getPhoto(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.ownPhoto(w, r); ok {
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) photoViewURL(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPhoto(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, photoViewResponse{
		DownloadURL:       fmt.Sprintf("%s/%s/%s?op=download", storageBaseURL, p.UserID, p.ID),
		EncryptionKeyInfo: p.encryptionKeyInfo,
		ExpiresAt:         s.now().UTC().Add(signedURLTTL),
	})
}

// deletePhoto is a soft delete; the metadata is kept but no longer visible.
func (s *Server) deletePhoto(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPhoto(w, r)
	if !ok {
		return
	}
	s.photos.update(p.ID, func(p *photo) { p.IsDeleted = true })
	writeJSON(w, http.StatusOK, map[string]string{"message": "photo deleted"})
}

func (s *Server) photoStats(w http.ResponseWriter, r *http.Request) {
	stats := photoStats{
		PhotosByAngle:       make(map[string]int),
		LatestPhotosByAngle: make(map[string]photo),
	}
	for _, p := range s.userPhotos(currentUserID(r)) {
		stats.TotalPhotos++
		stats.PhotosByAngle[p.Angle]++
		if latest, ok := stats.LatestPhotosByAngle[p.Angle]; !ok || p.CaptureDate >= latest.CaptureDate {
			stats.LatestPhotosByAngle[p.Angle] = p
		}
		if p.FileSize != nil {
			stats.TotalStorageUsedBytes += *p.FileSize
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

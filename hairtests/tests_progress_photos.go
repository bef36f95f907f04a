package hairtests

import (
	"fmt"
	"net/http"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

const testPhotoFileSize = 1024000

func (e *environment) progressPhotoTests() []framework.TestCase {
	auth := e.hasAccessToken()
	created := e.hasResource(PhotoMetadata)
	return []framework.TestCase{
		e.testCase("Get Progress Photos", func(t *T) {
			resp := t.Call(EndpointListPhotos, WithAuth(),
				WithQuery("angle", servicedef.AngleHairline), WithQuery("limit", 10), WithQuery("offset", 0))
			t.requireSuccess(resp)
			t.Notef("retrieved %d progress photos", t.requireList(resp))
		}, auth),
		e.testCase("Request Photo Upload URL", func(t *T) {
			token := t.Session().Credentials.Token
			resp := t.Call(EndpointPhotoUploadURL, WithAuth(), WithBody(servicedef.PhotoUploadParams{
				Filename:          fmt.Sprintf("test_photo_%s.jpg.enc", token),
				Angle:             servicedef.AngleVertex,
				CaptureDate:       e.timestamp(),
				EncryptionKeyInfo: fmt.Sprintf("test_key_%s", token),
			}))
			t.requireSuccess(resp, "photoMetadataId", "uploadUrl", "expiresAt")
			var upload servicedef.PhotoUploadResponse
			t.decode(resp, &upload)
			t.Session().SetResource(PhotoMetadata, upload.PhotoMetadataID)
			t.Notef("upload URL received: %s", upload.PhotoMetadataID)
		}, auth),
		e.testCase("Finalize Photo Upload", func(t *T) {
			id := t.requireResource(PhotoMetadata)
			resp := t.Call(EndpointFinalizePhoto, WithAuth(), WithID(id),
				WithBody(servicedef.FinalizePhotoParams{FileSize: testPhotoFileSize}))
			t.requireSuccess(resp, "id", "userId", "filename", "angle", "captureDate", "uploadedAt", "isDeleted")
			t.Notef("photo upload finalized")
		}, auth, created),
		e.testCase("Get Photo Metadata", func(t *T) {
			id := t.requireResource(PhotoMetadata)
			resp := t.Call(EndpointGetPhoto, WithAuth(), WithID(id))
			t.requireSuccess(resp, "id", "userId", "filename", "angle", "captureDate", "isDeleted")
			t.Notef("photo metadata retrieved")
		}, auth, created),
		e.testCase("Get Photo View URL", func(t *T) {
			id := t.requireResource(PhotoMetadata)
			resp := t.Call(EndpointPhotoViewURL, WithAuth(), WithID(id))
			t.requireSuccess(resp, "downloadUrl", "encryptionKeyInfo", "expiresAt")
			t.Notef("view URL received")
		}, auth, created),
		e.testCase("Get Photo Stats", func(t *T) {
			resp := t.Call(EndpointPhotoStats, WithAuth())
			t.requireSuccess(resp, "totalPhotos", "photosByAngle", "latestPhotosByAngle", "totalStorageUsedBytes")
			t.Notef("photo stats retrieved")
		}, auth),
		e.testCase("Delete Progress Photo", func(t *T) {
			id := t.requireResource(PhotoMetadata)
			resp := t.Call(EndpointDeletePhoto, WithAuth(), WithID(id))
			t.requireStatus(resp, http.StatusOK, http.StatusNoContent)
			t.Session().ClearResource(PhotoMetadata)
			t.Notef("progress photo %s deleted", id)
		}, auth, created),
	}
}

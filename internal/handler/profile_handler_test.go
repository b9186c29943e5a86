package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
)

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func pngBytes(size int) []byte {
	payload := make([]byte, size)
	copy(payload, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	return payload
}

func TestAvatarUploadAcceptsPNG(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	body, contentType := multipartBody(t, "avatar.png", pngBytes(1024))
	req := httptest.NewRequest("POST", "/api/v1/profiles/me/avatar", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var uploaded struct {
		Data dto.AvatarResponse `json:"data"`
	}
	decodeResponse(t, resp, &uploaded)
	require.Equal(t, "image/png", uploaded.Data.MimeType)
	require.NotEmpty(t, uploaded.Data.URL)
}

func TestAvatarUploadAcceptsFileAtSizeCap(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	// 4MB is inside the 5MB cap; multipart overhead must not get it refused
	// at the transport level before the service sees it.
	body, contentType := multipartBody(t, "avatar.png", pngBytes(4*1024*1024))
	req := httptest.NewRequest("POST", "/api/v1/profiles/me/avatar", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAvatarUploadRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	body, contentType := multipartBody(t, "avatar.png", pngBytes(5*1024*1024+1024))
	req := httptest.NewRequest("POST", "/api/v1/profiles/me/avatar", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	var failed struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &failed)
	require.False(t, failed.Success)
	require.NotEmpty(t, failed.Message, "rejection must use the error envelope, not a bare transport error")
}

func TestAvatarUploadRejectsDisallowedType(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	gif := append([]byte("GIF89a"), make([]byte, 256)...)
	body, contentType := multipartBody(t, "avatar.gif", gif)
	req := httptest.NewRequest("POST", "/api/v1/profiles/me/avatar", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestProfileDirectoryRequiresManagement(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/management/profiles", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProfileDirectoryListsUsers(t *testing.T) {
	env := newTestEnv(t, models.RoleManagement)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/management/profiles?page=1&page_size=10", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listing struct {
		Data []dto.ProfileResponse `json:"data"`
		Meta dto.PaginationMeta    `json:"meta"`
	}
	decodeResponse(t, resp, &listing)
	require.NotEmpty(t, listing.Data)
}

func TestProfileAdminUpdateChangesRole(t *testing.T) {
	env := newTestEnv(t, models.RoleManagement)

	payload, err := json.Marshal(fiber.Map{"role": models.RoleEvaluator})
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", requestPath("/api/v1/management/profiles/%d", env.userID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Data dto.ProfileResponse `json:"data"`
	}
	decodeResponse(t, resp, &updated)
	require.Equal(t, models.RoleEvaluator, updated.Data.Role)
}

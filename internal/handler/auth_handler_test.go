package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
)

func TestSignUpAndSignInOverHTTP(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	signUp, err := json.Marshal(dto.SignUpRequest{
		Email:       "amina@example.com",
		Password:    "strong-password",
		DisplayName: "Amina",
		Language:    models.LanguageArabic,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/auth/signup", bytes.NewReader(signUp))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.AuthResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.NotEmpty(t, created.Data.Token)
	require.Equal(t, models.RoleSubmitter, created.Data.Profile.Role)

	signIn, err := json.Marshal(dto.SignInRequest{Email: "Amina@Example.com", Password: "strong-password"})
	require.NoError(t, err)

	req = httptest.NewRequest("POST", "/api/v1/auth/signin", bytes.NewReader(signIn))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	signUp, err := json.Marshal(dto.SignUpRequest{
		Email:       "omar@example.com",
		Password:    "strong-password",
		DisplayName: "Omar",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/auth/signup", bytes.NewReader(signUp))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	signIn, err := json.Marshal(dto.SignInRequest{Email: "omar@example.com", Password: "wrong"})
	require.NoError(t, err)

	req = httptest.NewRequest("POST", "/api/v1/auth/signin", bytes.NewReader(signIn))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	payload, err := json.Marshal(dto.SignUpRequest{
		Email:       "sami@example.com",
		Password:    "strong-password",
		DisplayName: "Sami",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/v1/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestMeReturnsAuthenticatedProfile(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/auth/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me struct {
		Data dto.ProfileResponse `json:"data"`
	}
	decodeResponse(t, resp, &me)
	require.Equal(t, env.userID, me.Data.ID)
}

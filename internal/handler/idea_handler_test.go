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

func TestIdeaDraftLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	body, err := json.Marshal(dto.IdeaCreateRequest{
		Title:       "Self-service onboarding",
		Description: "Let new hires pick their own equipment on day one.",
		Category:    "process",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/ideas", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Success bool             `json:"success"`
		Data    dto.IdeaResponse `json:"data"`
		Message string           `json:"message"`
	}
	decodeResponse(t, resp, &created)
	require.True(t, created.Success)
	require.Equal(t, "draft created", created.Message)
	require.True(t, created.Data.IsDraft)
	require.Empty(t, created.Data.ReferenceCode)

	submitReq := httptest.NewRequest("POST", requestPath("/api/v1/ideas/%d/submit", created.Data.ID), nil)
	submitResp, err := env.app.Test(submitReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, submitResp.StatusCode)

	var submitted struct {
		Data dto.IdeaResponse `json:"data"`
	}
	decodeResponse(t, submitResp, &submitted)
	require.False(t, submitted.Data.IsDraft)
	require.Equal(t, models.IdeaStatusSubmitted, submitted.Data.Status)
	require.NotEmpty(t, submitted.Data.ReferenceCode)

	// A submitted idea is no longer an editable draft.
	again, err := env.app.Test(httptest.NewRequest("POST", requestPath("/api/v1/ideas/%d/submit", created.Data.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, again.StatusCode)
}

func TestIdeaDiscardHidesDraft(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	body, err := json.Marshal(dto.IdeaCreateRequest{
		Title:       "Rooftop garden",
		Description: "Use the roof for a staff vegetable garden.",
		Category:    "facilities",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/ideas", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.IdeaResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)

	deleteResp, err := env.app.Test(httptest.NewRequest("DELETE", requestPath("/api/v1/ideas/%d", created.Data.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, deleteResp.StatusCode)

	getResp, err := env.app.Test(httptest.NewRequest("GET", requestPath("/api/v1/ideas/%d", created.Data.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, getResp.StatusCode)
}

func TestIdeaCreateValidatesPayload(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	body, err := json.Marshal(dto.IdeaCreateRequest{Title: "x", Description: "short", Category: ""})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/ideas", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestIdeaSearchReturnsPagination(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/ideas?status=submitted&page=1&page_size=10", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listing struct {
		Success bool               `json:"success"`
		Data    []dto.IdeaResponse `json:"data"`
		Meta    dto.PaginationMeta `json:"meta"`
	}
	decodeResponse(t, resp, &listing)
	require.True(t, listing.Success)
	require.Equal(t, 1, listing.Meta.Page)
}

func TestIdeaSearchRejectsMalformedFilters(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/ideas?min_score=abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = env.app.Test(httptest.NewRequest("GET", "/api/v1/ideas?date_from=yesterday", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestManagementSurfaceRejectsSubmitter(t *testing.T) {
	env := newTestEnv(t, models.RoleSubmitter)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/management/dashboard/overview", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = env.app.Test(httptest.NewRequest("GET", "/api/v1/management/audit", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestManagementDashboardOverview(t *testing.T) {
	env := newTestEnv(t, models.RoleManagement)

	resp, err := env.app.Test(httptest.NewRequest("GET", "/api/v1/management/dashboard/overview", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var overview struct {
		Data dto.DashboardOverviewResponse `json:"data"`
	}
	decodeResponse(t, resp, &overview)
	require.Zero(t, overview.Data.TotalIdeas)
}

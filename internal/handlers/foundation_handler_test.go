package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantboard/internal/config"
	"grantboard/internal/handlers"
	"grantboard/internal/models"
	"grantboard/internal/repositories"
	"grantboard/internal/routes"
	"grantboard/internal/services"
	"grantboard/internal/testdb"
)

type testEnv struct {
	pc     *testdb.PostgresContainer
	router *gin.Engine
	repo   *repositories.FoundationRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	pc := testdb.SetupSharedPostgres(t)
	pc.Reset(t)

	repo := repositories.NewFoundationRepository(pc.Pool)
	foundationService := services.NewFoundationService(repo)
	outreachService := services.NewOutreachService(config.OutreachConfig{
		DefaultProjectName: "Panna World Championship 2026",
		SenderName:         "Kristoffer Raun",
		SenderTitle:        "Founder, Pannahouse",
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := handlers.NewFoundationHandler(foundationService, outreachService, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.RegisterRoutes(router, handler)

	return &testEnv{pc: pc, router: router, repo: repo}
}

func (e *testEnv) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) create(t *testing.T, f *models.Foundation) *models.Foundation {
	t.Helper()
	require.NoError(t, e.repo.Create(context.Background(), f))
	return f
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func TestHealthEndpoint(t *testing.T) {
	env := setupEnv(t)

	w := env.request(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListFoundations(t *testing.T) {
	env := setupEnv(t)

	t.Run("EmptyStoreReturnsEmptyArray", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	env.create(t, &models.Foundation{Name: "Nordea-fonden", FitScore: intPtr(9), RollingApplications: true})
	env.create(t, &models.Foundation{Name: "Augustinus Fonden", FitScore: intPtr(6)})
	env.create(t, &models.Foundation{Name: "Bikubenfonden", FitScore: intPtr(8), Status: models.StatusDrafting})

	t.Run("ReturnsAllOrderedByFit", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations", "")
		require.Equal(t, http.StatusOK, w.Code)

		foundations := decodeJSON[[]models.Foundation](t, w)
		require.Len(t, foundations, 3)
		assert.Equal(t, "Nordea-fonden", foundations[0].Name)
		assert.Equal(t, "Augustinus Fonden", foundations[2].Name)
	})

	t.Run("AppliesQueryFilters", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations?status=drafting&fitMin=8&rolling=false", "")
		require.Equal(t, http.StatusOK, w.Code)

		foundations := decodeJSON[[]models.Foundation](t, w)
		require.Len(t, foundations, 1)
		assert.Equal(t, "Bikubenfonden", foundations[0].Name)
	})

	t.Run("StatusAllReturnsEverything", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations?status=all", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeJSON[[]models.Foundation](t, w), 3)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations?status=daydreaming", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid query parameters"}`, w.Body.String())
	})

	t.Run("RejectsFitMinOutOfRange", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations?fitMin=11", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetFoundation(t *testing.T) {
	env := setupEnv(t)

	created := env.create(t, &models.Foundation{
		Name:       "Egmont Fonden",
		URL:        strPtr("https://www.egmontfonden.dk"),
		FocusAreas: strPtr("Children and youth welfare, Social initiatives"),
		FitScore:   intPtr(8),
	})

	t.Run("ReturnsRecord", func(t *testing.T) {
		w := env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/foundations/%d", created.ID), "")
		require.Equal(t, http.StatusOK, w.Code)

		foundation := decodeJSON[models.Foundation](t, w)
		assert.Equal(t, created.ID, foundation.ID)
		assert.Equal(t, "Egmont Fonden", foundation.Name)
		assert.Equal(t, 8, *foundation.FitScore)
	})

	t.Run("MissingRecordIs404", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})

	t.Run("NonNumericIDIs400", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid foundation ID"}`, w.Body.String())
	})
}

func TestUpdateFoundation(t *testing.T) {
	env := setupEnv(t)

	created := env.create(t, &models.Foundation{
		Name:     "Lauritzen Fonden",
		FitScore: intPtr(9),
		Notes:    strPtr("quarterly deadlines"),
	})
	path := fmt.Sprintf("/api/v1/foundations/%d", created.ID)

	t.Run("AppliesPatchAndReturnsRecord", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, path, `{"status":"submitted","fit_score":8}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeJSON[handlers.UpdateFoundationResponse](t, w)
		assert.True(t, resp.OK)
		require.NotNil(t, resp.Foundation)
		assert.Equal(t, models.StatusSubmitted, resp.Foundation.Status)
		assert.Equal(t, 8, *resp.Foundation.FitScore)
		assert.Equal(t, "quarterly deadlines", *resp.Foundation.Notes, "untouched fields survive")
	})

	t.Run("NullClearsNullableField", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, path, `{"notes":null}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeJSON[handlers.UpdateFoundationResponse](t, w)
		assert.Nil(t, resp.Foundation.Notes)
	})

	t.Run("SetsDeadlineFromDateString", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, path, `{"application_deadline":"2026-06-21"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeJSON[handlers.UpdateFoundationResponse](t, w)
		require.NotNil(t, resp.Foundation.ApplicationDeadline)
		assert.Equal(t, "2026-06-21", resp.Foundation.ApplicationDeadline.String())
	})

	t.Run("EmptyPatchIs404", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, path, `{}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, path, `{"status":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid request body"}`, w.Body.String())
	})

	t.Run("InvalidDateIs400", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, path, `{"application_deadline":"21/06/2026"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("FitScoreOutOfRangeIs400", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, path, `{"fit_score":11}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingRecordIs404", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, "/api/v1/foundations/999", `{"status":"approved"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGenerateOutreach(t *testing.T) {
	env := setupEnv(t)

	created := env.create(t, &models.Foundation{
		Name:       "TrygFonden",
		URL:        strPtr("https://tryghed.dk"),
		FocusAreas: strPtr("Safety and security for vulnerable youth, Community building"),
	})
	path := fmt.Sprintf("/api/v1/foundations/%d/outreach", created.ID)

	t.Run("DefaultsProjectName", func(t *testing.T) {
		w := env.request(t, http.MethodPost, path, "")
		require.Equal(t, http.StatusOK, w.Code)

		template := decodeJSON[services.OutreachTemplate](t, w)
		assert.Equal(t, "Partnership Opportunity: Panna World Championship 2026", template.Subject)
		assert.Contains(t, template.Body, "Dear TrygFonden Team,")
		assert.Contains(t, template.Body, "Foundation application portal: https://tryghed.dk")
		assert.Contains(t, template.Body, "- Community building: [explain how your project addresses this]")
	})

	t.Run("UsesProvidedProjectName", func(t *testing.T) {
		w := env.request(t, http.MethodPost, path, `{"projectName":"Street Cup 2027"}`)
		require.Equal(t, http.StatusOK, w.Code)

		template := decodeJSON[services.OutreachTemplate](t, w)
		assert.Equal(t, "Partnership Opportunity: Street Cup 2027", template.Subject)
		assert.Contains(t, template.Body, "introduce Street Cup 2027")
	})

	t.Run("MalformedBodyFallsBackToDefault", func(t *testing.T) {
		w := env.request(t, http.MethodPost, path, `{"projectName":`)
		require.Equal(t, http.StatusOK, w.Code)

		template := decodeJSON[services.OutreachTemplate](t, w)
		assert.Equal(t, "Partnership Opportunity: Panna World Championship 2026", template.Subject)
	})

	t.Run("MissingRecordIs404", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/v1/foundations/999/outreach", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})
}

func TestGetStats(t *testing.T) {
	env := setupEnv(t)

	env.create(t, &models.Foundation{Name: "S1", FitScore: intPtr(9)})
	env.create(t, &models.Foundation{Name: "S2", FitScore: intPtr(5), Status: models.StatusDrafting})
	env.create(t, &models.Foundation{Name: "S3"})

	w := env.request(t, http.MethodGet, "/api/v1/foundations/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	stats := decodeJSON[models.FoundationStats](t, w)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.HighFit)
	require.NotNil(t, stats.AvgFitScore)
	assert.InDelta(t, 7.0, *stats.AvgFitScore, 0.001)
	assert.Len(t, stats.ByStatus, 2)
}

func TestGetUpcomingDeadlines(t *testing.T) {
	env := setupEnv(t)

	today := models.Today()
	soon := today.AddDays(10)
	far := today.AddDays(200)

	env.create(t, &models.Foundation{Name: "Soon", ApplicationDeadline: &soon})
	env.create(t, &models.Foundation{Name: "Far", ApplicationDeadline: &far})
	env.create(t, &models.Foundation{Name: "Rolling", RollingApplications: true})

	t.Run("DefaultsToNinetyDayWindow", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations/deadlines", "")
		require.Equal(t, http.StatusOK, w.Code)

		foundations := decodeJSON[[]models.Foundation](t, w)
		require.Len(t, foundations, 1)
		assert.Equal(t, "Soon", foundations[0].Name)
	})

	t.Run("HonorsCustomWindow", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations/deadlines?days=365", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeJSON[[]models.Foundation](t, w), 2)
	})

	t.Run("NegativeWindowIs400", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations/deadlines?days=-1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NonNumericWindowIs400", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/v1/foundations/deadlines?days=soon", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid days parameter"}`, w.Body.String())
	})
}

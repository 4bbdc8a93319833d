package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Conceptual-Machines/counterpoint-api/internal/config"
	"github.com/Conceptual-Machines/counterpoint-api/internal/counterpoint"
	"github.com/Conceptual-Machines/counterpoint-api/internal/database"
	"github.com/Conceptual-Machines/counterpoint-api/internal/middleware"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/services"
	"github.com/Conceptual-Machines/counterpoint-api/pkg/embedded"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	entries, err := services.LoadCatalog(embedded.CantusFirmiYAML)
	require.NoError(t, err)
	_, err = services.NewCantusService(db).Seed(context.Background(), entries)
	require.NoError(t, err)

	return SetupRouter(db, cfg, "test", nil)
}

func openConfig() *config.Config {
	return &config.Config{AuthMode: config.AuthModeNone, RateLimitRPS: 1000, RateLimitBurst: 1000}
}

func request(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, openConfig())

	w := request(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = request(r, http.MethodGet, "/api/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"species":["first","second","third"]`)
}

func TestValidateEndpoint(t *testing.T) {
	r := newTestRouter(t, openConfig())

	tests := []struct {
		name     string
		body     models.ValidateRequest
		status   int
		contains string
	}{
		{
			name: "clean first species",
			body: models.ValidateRequest{
				Species:      1,
				CantusFirmus: []string{"C4", "D4", "E4", "D4", "C4"},
				Counterpoint: []string{"C5", "B4", "G4", "B4", "C5"},
			},
			status:   http.StatusOK,
			contains: `"score":100`,
		},
		{
			name: "stored cantus firmus",
			body: models.ValidateRequest{
				Species:      1,
				CantusSlug:   "short-c-major",
				Counterpoint: []string{"C5", "B4", "G4", "B4", "C5"},
			},
			status:   http.StatusOK,
			contains: `"valid":true`,
		},
		{
			name: "wrong length is still a 200",
			body: models.ValidateRequest{
				Species:      2,
				CantusFirmus: []string{"C4", "D4", "C4"},
				Counterpoint: []string{"C5", "B4", "A4", "C5"},
			},
			status:   http.StatusOK,
			contains: `"rule":"LENGTH"`,
		},
		{
			name: "malformed pitch",
			body: models.ValidateRequest{
				Species:      1,
				CantusFirmus: []string{"C4", "D4"},
				Counterpoint: []string{"C5", "H4"},
			},
			status:   http.StatusBadRequest,
			contains: "counterpoint note 2",
		},
		{
			name: "misspelled mode",
			body: models.ValidateRequest{
				Species:      1,
				CantusFirmus: []string{"D4", "E4", "D4"},
				Counterpoint: []string{"A4", "G4", "D5"},
				Key:          "D",
				Mode:         "dorain",
			},
			status:   http.StatusBadRequest,
			contains: `did you mean \"dorian\"?`,
		},
		{
			name: "unsupported species",
			body: models.ValidateRequest{
				Species:      4,
				CantusFirmus: []string{"C4"},
				Counterpoint: []string{"C5"},
			},
			status: http.StatusBadRequest,
		},
		{
			name: "unknown cantus slug",
			body: models.ValidateRequest{
				Species:      1,
				CantusSlug:   "nope",
				Counterpoint: []string{"C5"},
			},
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(r, http.MethodPost, "/api/v1/validate", tt.body, "")
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}

	w := request(r, http.MethodGet, "/api/v1/validations/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.ValidationStats
	decode(t, w, &stats)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Valid)
}

func TestValidateEndpoint_ResultShape(t *testing.T) {
	r := newTestRouter(t, openConfig())

	w := request(r, http.MethodPost, "/api/v1/validate", models.ValidateRequest{
		Species:      1,
		CantusFirmus: []string{"C4", "D4"},
		Counterpoint: []string{"G4", "A4"},
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var res counterpoint.Result
	decode(t, w, &res)
	assert.False(t, res.Valid)
	require.Len(t, res.Positions, 2)
	assert.True(t, res.Positions[0].Valid)
	assert.False(t, res.Positions[1].Valid)
	assert.Equal(t, counterpoint.RuleParallelFifths, res.Errors[0].Rule)
}

func TestCantusEndpoints(t *testing.T) {
	r := newTestRouter(t, openConfig())

	var list struct {
		CantusFirmi []models.CantusFirmus `json:"cantus_firmi"`
		Count       int                   `json:"count"`
	}
	w := request(r, http.MethodGet, "/api/v1/cantus", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Equal(t, 7, list.Count)

	w = request(r, http.MethodGet, "/api/v1/cantus?mode=dorian", nil, "")
	decode(t, w, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "fux-dorian", list.CantusFirmi[0].Slug)

	w = request(r, http.MethodGet, "/api/v1/cantus?key=e", nil, "")
	decode(t, w, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "fux-phrygian", list.CantusFirmi[0].Slug)

	w = request(r, http.MethodGet, "/api/v1/cantus?key=H", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodGet, "/api/v1/cantus?max_length=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodGet, "/api/v1/cantus/fux-dorian", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var cf models.CantusFirmus
	decode(t, w, &cf)
	assert.Equal(t, "D", cf.Key)
	assert.Len(t, cf.Notes, 11)

	w = request(r, http.MethodGet, "/api/v1/cantus/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminCantus_JWT(t *testing.T) {
	cfg := &config.Config{AuthMode: config.AuthModeJWT, JWTSecret: testSecret, RateLimitRPS: 1000, RateLimitBurst: 1000}
	r := newTestRouter(t, cfg)

	token := func(role string) string {
		s, err := middleware.IssueToken(testSecret, "u-"+role, role, time.Hour)
		require.NoError(t, err)
		return s
	}
	body := models.CantusRequest{
		Slug:  "g-major-short",
		Title: "Short G major",
		Key:   "G",
		Mode:  "major",
		Notes: []string{"G3", "A3", "B3", "A3", "G3"},
	}

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/admin/cantus", body, "").Code)
	assert.Equal(t, http.StatusForbidden, request(r, http.MethodPost, "/api/admin/cantus", body, token(models.RoleUser)).Code)

	w := request(r, http.MethodPost, "/api/admin/cantus", body, token(models.RoleEditor))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"length":5`)

	w = request(r, http.MethodPost, "/api/admin/cantus", body, token(models.RoleAdmin))
	assert.Equal(t, http.StatusConflict, w.Code)

	bad := body
	bad.Slug = "bad"
	bad.Notes = []string{"G3", "Z3"}
	w = request(r, http.MethodPost, "/api/admin/cantus", bad, token(models.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Catalog reads are open, with or without a usable token
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/cantus/g-major-short", nil, "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/cantus/g-major-short", nil, token(models.RoleUser)).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/cantus", nil, "not-a-jwt").Code)

	// Validation routes are not
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/v1/validations/stats", nil, "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/validations/stats", nil, token(models.RoleUser)).Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/validate", models.ValidateRequest{}, "").Code)

	assert.Equal(t, http.StatusForbidden, request(r, http.MethodDelete, "/api/admin/cantus/g-major-short", nil, token(models.RoleEditor)).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodDelete, "/api/admin/cantus/g-major-short", nil, token(models.RoleAdmin)).Code)
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodDelete, "/api/admin/cantus/g-major-short", nil, token(models.RoleAdmin)).Code)
}

func TestAdminCantus_Gateway(t *testing.T) {
	r := newTestRouter(t, &config.Config{AuthMode: config.AuthModeGateway})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/cantus/short-c-major", nil)
	req.Header.Set("X-User-ID", "7")
	req.Header.Set("X-User-Role", models.RoleAdmin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cantus", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/validations/stats", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateRateLimit(t *testing.T) {
	r := newTestRouter(t, &config.Config{AuthMode: config.AuthModeNone, RateLimitRPS: 0.001, RateLimitBurst: 1})

	body := models.ValidateRequest{
		Species:      1,
		CantusFirmus: []string{"C4", "D4"},
		Counterpoint: []string{"C5", "B4"},
	}
	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/v1/validate", body, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodPost, "/api/v1/validate", body, "").Code)

	// Reads are not limited
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/cantus", nil, "").Code)
}

package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihdim5/healthrecord-api/internal/email"
	authHandler "github.com/ihdim5/healthrecord-api/internal/handler/auth"
	doctorHandler "github.com/ihdim5/healthrecord-api/internal/handler/doctor"
	healthHandler "github.com/ihdim5/healthrecord-api/internal/handler/health"
	patientHandler "github.com/ihdim5/healthrecord-api/internal/handler/patient"
	reportHandler "github.com/ihdim5/healthrecord-api/internal/handler/report"
	"github.com/ihdim5/healthrecord-api/internal/middleware"
	"github.com/ihdim5/healthrecord-api/internal/repository/memory"
	auditService "github.com/ihdim5/healthrecord-api/internal/service/audit"
	authService "github.com/ihdim5/healthrecord-api/internal/service/auth"
	doctorService "github.com/ihdim5/healthrecord-api/internal/service/doctor"
	patientService "github.com/ihdim5/healthrecord-api/internal/service/patient"
	reportService "github.com/ihdim5/healthrecord-api/internal/service/report"
	summaryService "github.com/ihdim5/healthrecord-api/internal/service/summary"
	"github.com/ihdim5/healthrecord-api/pkg/auth"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore(memory.Options{SeedDemoData: true})
	patientRepo := memory.NewPatientRepository(store)
	doctorRepo := memory.NewDoctorRepository(store)
	accountRepo := memory.NewAccountRepository(store)

	auditor := auditService.NewService(memory.NewAuditRepository(store))
	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "test")
	authSvc := authService.NewService(accountRepo, jwtSvc, auditor)
	patientSvc := patientService.NewService(patientRepo, accountRepo, auditor)
	doctorSvc := doctorService.NewService(doctorRepo, accountRepo, auditor, email.NoopService{})
	reportSvc := reportService.NewService(patientRepo)
	summarySvc := summaryService.NewService(patientSvc, summaryService.Config{})

	authMW := middleware.NewAuthMiddleware(authSvc, doctorSvc)
	r := NewRouter(
		Config{},
		authMW,
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc, summarySvc),
		doctorHandler.NewHandler(doctorSvc),
		reportHandler.NewHandler(reportSvc),
		healthHandler.NewHandler(),
	)
	return r.Engine()
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func login(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", email, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestRouter(t)
	w, _ := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newTestRouter(t)

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "patient@test.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", env.Message)

	w, env = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "nobody@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", env.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestRouter(t)

	w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/patients/P0001", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/P0001", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestPatientRegistrationIsOpen(t *testing.T) {
	engine := newTestRouter(t)

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/patients", "", gin.H{
		"firstName":   "New",
		"lastName":    "Patient",
		"email":       "new.patient@test.com",
		"password":    "Password1",
		"dateOfBirth": "1999-03-03",
		"gender":      "Other",
		"phone":       "333-333-3333",
		"address":     "3 Example Way",
		"bloodGroup":  "AB+",
		"emergencyContacts": []gin.H{
			{"name": "Contact", "relationship": "Friend", "phone": "444-444-4444"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID          string `json:"id"`
		LookupToken string `json:"qrCodeUrl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "P0003", created.ID)
	assert.Equal(t, created.ID, created.LookupToken)
}

func TestPatientRecordAccessRules(t *testing.T) {
	engine := newTestRouter(t)

	patientToken := login(t, engine, "patient@test.com")
	adminToken := login(t, engine, "admin@ihdim5.com")
	govToken := login(t, engine, "gov@ihdim5.com")

	// A patient reads their own record but nobody else's.
	w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/patients/P0001", patientToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients/P0002", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The roster is admin-only.
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients", govToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin reads any record; unknown ids are 404, not 403.
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients/P0002", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients/P9999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerificationGatesRecordWorkflow(t *testing.T) {
	engine := newTestRouter(t)

	verified := login(t, engine, "doctor@test.com")
	pending := login(t, engine, "bob.pending@test.com")
	rejected := login(t, engine, "carol.rejected@test.com")

	w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/patients/lookup/P0001", verified, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for name, token := range map[string]string{"pending": pending, "rejected": rejected} {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/patients/lookup/P0001", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, name)
		assert.Equal(t, "doctor is not verified", env.Message)

		w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/patients/P0001/notes", token, gin.H{
			"date": "2025-03-01", "doctorName": "Dr. Bob", "note": "should be blocked",
		})
		assert.Equal(t, http.StatusForbidden, w.Code, name)
	}

	w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/patients/P0001/notes", verified, gin.H{
		"date": "2025-03-01", "doctorName": "Dr. Alice", "note": "allowed",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients/lookup/P9999", verified, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDoctorStatusTransitionsOverHTTP(t *testing.T) {
	engine := newTestRouter(t)

	adminToken := login(t, engine, "admin@ihdim5.com")
	doctorToken := login(t, engine, "doctor@test.com")

	// Only admins decide verification.
	w, _ := doJSON(t, engine, http.MethodPut, "/api/v1/doctors/D002/status", doctorToken, gin.H{"status": "Verified"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, engine, http.MethodPut, "/api/v1/doctors/D002/status", adminToken, gin.H{"status": "Verified"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := doJSON(t, engine, http.MethodPut, "/api/v1/doctors/D002/status", adminToken, gin.H{"status": "Pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "a doctor cannot be returned to pending", env.Message)

	// The promoted doctor can now use the record workflow.
	promoted := login(t, engine, "bob.pending@test.com")
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients/lookup/P0001", promoted, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDoctorRosterVisibility(t *testing.T) {
	engine := newTestRouter(t)

	adminToken := login(t, engine, "admin@ihdim5.com")
	patientToken := login(t, engine, "patient@test.com")

	count := func(token string) int {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/doctors", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var doctors []json.RawMessage
		require.NoError(t, json.Unmarshal(env.Data, &doctors))
		return len(doctors)
	}

	assert.Equal(t, 3, count(adminToken), "admin sees the full roster")
	assert.Equal(t, 1, count(patientToken), "patients see only verified doctors")
}

func TestHealthReportAccess(t *testing.T) {
	engine := newTestRouter(t)

	govToken := login(t, engine, "gov@ihdim5.com")
	adminToken := login(t, engine, "admin@ihdim5.com")
	patientToken := login(t, engine, "patient@test.com")

	w, env := doJSON(t, engine, http.MethodGet, "/api/v1/reports/health", govToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		TotalPatients      int            `json:"totalPatients"`
		GenderDistribution map[string]int `json:"genderDistribution"`
		ChronicConditions  map[string]int `json:"chronicConditions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.TotalPatients)
	assert.Equal(t, 1, data.GenderDistribution["Male"])
	assert.Equal(t, 1, data.GenderDistribution["Female"])
	assert.Equal(t, 1, data.ChronicConditions["None"])

	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/reports/health", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/reports/health", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteIsAdminOnlyAndIdempotent(t *testing.T) {
	engine := newTestRouter(t)

	adminToken := login(t, engine, "admin@ihdim5.com")
	patientToken := login(t, engine, "patient@test.com")

	w, _ := doJSON(t, engine, http.MethodDelete, "/api/v1/patients/P0002", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/patients/P0002", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting an id that is already gone still succeeds.
	w, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/patients/P0002", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients/P0002", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileAccess(t *testing.T) {
	engine := newTestRouter(t)

	patientToken := login(t, engine, "patient@test.com")
	adminToken := login(t, engine, "admin@ihdim5.com")

	w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/profile/P0001", patientToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/profile/D001", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, engine, http.MethodGet, "/api/v1/profile/D001", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSummaryDisabledWithoutConfiguration(t *testing.T) {
	engine := newTestRouter(t)
	doctorToken := login(t, engine, "doctor@test.com")

	w, env := doJSON(t, engine, http.MethodGet, "/api/v1/patients/P0001/summary", doctorToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "summary generation is not configured", env.Message)
}

func TestLogout(t *testing.T) {
	engine := newTestRouter(t)
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)
}

func TestRateLimiterRejectsBursts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.NewRateLimiter(1, 2).RateLimit())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	var limited bool
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	assert.True(t, limited, "burst beyond the limit must be rejected")
}

func TestUnknownEndpoint(t *testing.T) {
	engine := newTestRouter(t)
	w, _ := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/%s", "nope"), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

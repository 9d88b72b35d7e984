package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/pkg/errors"
)

type stubPatients struct {
	patient *model.Patient
}

func (s *stubPatients) Get(_ context.Context, id string) (*model.Patient, error) {
	if s.patient != nil && s.patient.ID == id {
		return s.patient, nil
	}
	return nil, errors.NotFound("patient", nil)
}

func demoPatient() *model.Patient {
	return &model.Patient{
		ID:          "P0001",
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: "1985-05-15",
		Gender:      model.GenderMale,
		BloodGroup:  model.BloodOPositive,
		MedicalHistory: model.MedicalHistory{
			Allergies:         "Pollen",
			ChronicConditions: "Hypertension",
		},
		MedicalNotes: []model.MedicalNote{
			{ID: "N001", PatientID: "P0001", Date: "2024-01-15", DoctorName: "Dr. Alice", Note: "Routine check-up."},
		},
	}
}

func newCollaborator(t *testing.T, calls *atomic.Int32, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Contains(t, req.Prompt, "Patient Name: John Doe")

		json.NewEncoder(w).Encode(generateResponse{Text: reply})
	}))
}

func TestGenerateSummaryCallsCollaborator(t *testing.T) {
	var calls atomic.Int32
	server := newCollaborator(t, &calls, "summary text")
	defer server.Close()

	svc := NewService(&stubPatients{patient: demoPatient()}, Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Model:    "test-model",
	})

	text, err := svc.GenerateSummary(context.Background(), "P0001")
	require.NoError(t, err)
	assert.Equal(t, "summary text", text)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateSummaryCachesPerSnapshot(t *testing.T) {
	var calls atomic.Int32
	server := newCollaborator(t, &calls, "summary text")
	defer server.Close()

	patients := &stubPatients{patient: demoPatient()}
	svc := NewService(patients, Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Model:    "test-model",
		CacheTTL: time.Minute,
	})

	ctx := context.Background()
	_, err := svc.GenerateSummary(ctx, "P0001")
	require.NoError(t, err)
	_, err = svc.GenerateSummary(ctx, "P0001")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "unchanged snapshot must hit the cache")

	// A mutated record serializes differently, so the cache misses.
	patients.patient.MedicalNotes = append(patients.patient.MedicalNotes, model.MedicalNote{
		ID: "N002", PatientID: "P0001", Date: "2025-02-01", DoctorName: "Dr. Alice", Note: "New complaint.",
	})
	_, err = svc.GenerateSummary(ctx, "P0001")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateSummaryWhenNotConfigured(t *testing.T) {
	svc := NewService(&stubPatients{patient: demoPatient()}, Config{})

	_, err := svc.GenerateSummary(context.Background(), "P0001")
	require.Error(t, err)
	assert.Equal(t, errors.ErrBadRequest, errors.CodeOf(err))
	assert.False(t, svc.Enabled())
}

func TestGenerateSummaryUnknownPatient(t *testing.T) {
	svc := NewService(&stubPatients{}, Config{Endpoint: "http://localhost:0", APIKey: "k"})

	_, err := svc.GenerateSummary(context.Background(), "P0404")
	assert.True(t, errors.IsNotFound(err))
}

func TestGenerateSummaryCollaboratorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewService(&stubPatients{patient: demoPatient()}, Config{
		Endpoint: server.URL,
		APIKey:   "test-key",
	})

	_, err := svc.GenerateSummary(context.Background(), "P0001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestBuildPromptSerialization(t *testing.T) {
	prompt := buildPrompt(demoPatient())

	assert.True(t, strings.HasPrefix(prompt, "You are a helpful medical assistant."))
	assert.Contains(t, prompt, "Patient Name: John Doe\n")
	assert.Contains(t, prompt, "Date of Birth: 1985-05-15\n")
	assert.Contains(t, prompt, "Gender: Male\n")
	assert.Contains(t, prompt, "Blood Group: O+\n")
	assert.Contains(t, prompt, "- Allergies: Pollen\n")
	assert.Contains(t, prompt, "- Chronic Conditions: Hypertension\n")
	assert.Contains(t, prompt, "- Current Medications: None recorded\n")
	assert.Contains(t, prompt, "- Surgeries: None recorded\n")
	assert.Contains(t, prompt, "- Family History: None recorded\n")
	assert.Contains(t, prompt, "- 2024-01-15 (Dr. Alice): Routine check-up.\n")
	assert.Contains(t, prompt, "No prescriptions available.\n")
	assert.Contains(t, prompt, "No lab orders available.\n")
	assert.NotContains(t, prompt, "Vaccinations")
}

func TestBuildPromptEmptyCollections(t *testing.T) {
	p := demoPatient()
	p.MedicalNotes = nil
	prompt := buildPrompt(p)
	assert.Contains(t, prompt, "No notes available.\n")
}

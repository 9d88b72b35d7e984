package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/pkg/circuitbreaker"
	"github.com/ihdim5/healthrecord-api/pkg/errors"
)

// Service calls the external generative-text collaborator with a serialized
// patient summary and returns its response verbatim. The collaborator is an
// opaque HTTP endpoint; nothing clinical is derived from its output here.
// Responses are cached per patient snapshot, so a mutated patient always
// produces a fresh call.
type Service struct {
	patients PatientGetter
	client   *http.Client
	cache    *gocache.Cache
	breaker  *circuitbreaker.CircuitBreaker
	cfg      Config
}

// PatientGetter is the slice of the patient service the summarizer needs.
type PatientGetter interface {
	Get(ctx context.Context, id string) (*model.Patient, error)
}

type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

func NewService(patients PatientGetter, cfg Config) *Service {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &Service{
		patients: patients,
		client:   &http.Client{Timeout: cfg.Timeout},
		cache:    gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "summary",
			MaxFailures: 5,
			Timeout:     time.Minute,
		}),
		cfg: cfg,
	}
}

// Enabled reports whether the collaborator is configured; without an API key
// the feature is off, not broken.
func (s *Service) Enabled() bool {
	return s.cfg.APIKey != "" && s.cfg.Endpoint != ""
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// GenerateSummary fetches the patient, serializes it and asks the
// collaborator for a clinical summary.
func (s *Service) GenerateSummary(ctx context.Context, patientID string) (string, error) {
	if !s.Enabled() {
		return "", errors.BadRequest("summary generation is not configured", nil)
	}

	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(patient)
	key := cacheKey(patientID, prompt)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(string), nil
	}

	var text string
	err = s.breaker.Execute(func() error {
		var genErr error
		text, genErr = s.generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		return "", err
	}

	s.cache.Set(key, text, gocache.DefaultExpiration)
	return text, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: s.cfg.Model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode summary response: %w", err)
	}
	return out.Text, nil
}

// buildPrompt serializes the patient for the collaborator: demographics, the
// free-text history with "None recorded" fallbacks, then each clinical
// collection as dated one-line items.
func buildPrompt(p *model.Patient) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Patient Name: %s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(&b, "Date of Birth: %s\n", p.DateOfBirth)
	fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "Blood Group: %s\n\n", p.BloodGroup)

	b.WriteString("Medical History:\n")
	fmt.Fprintf(&b, "- Allergies: %s\n", orNoneRecorded(p.MedicalHistory.Allergies))
	fmt.Fprintf(&b, "- Chronic Conditions: %s\n", orNoneRecorded(p.MedicalHistory.ChronicConditions))
	fmt.Fprintf(&b, "- Current Medications: %s\n", orNoneRecorded(p.MedicalHistory.CurrentMedications))
	fmt.Fprintf(&b, "- Surgeries: %s\n", orNoneRecorded(p.MedicalHistory.Surgeries))
	fmt.Fprintf(&b, "- Family History: %s\n\n", orNoneRecorded(p.MedicalHistory.FamilyHistory))

	b.WriteString("Medical Notes:\n")
	if len(p.MedicalNotes) == 0 {
		b.WriteString("No notes available.\n")
	}
	for _, n := range p.MedicalNotes {
		fmt.Fprintf(&b, "- %s (%s): %s\n", n.Date, n.DoctorName, n.Note)
	}

	b.WriteString("\nPrescriptions:\n")
	if len(p.Prescriptions) == 0 {
		b.WriteString("No prescriptions available.\n")
	}
	for _, rx := range p.Prescriptions {
		fmt.Fprintf(&b, "- %s (%s): %s %s, %s\n", rx.Date, rx.DoctorName, rx.Medication, rx.Dosage, rx.Frequency)
	}

	b.WriteString("\nLab Orders:\n")
	if len(p.LabOrders) == 0 {
		b.WriteString("No lab orders available.\n")
	}
	for _, o := range p.LabOrders {
		fmt.Fprintf(&b, "- %s (%s): %s (Status: %s)\n", o.Date, o.DoctorName, o.TestName, o.Status)
	}

	return "You are a helpful medical assistant. Based on the following patient data, " +
		"generate a concise clinical summary for a doctor. Highlight key issues, recent " +
		"activities, and potential risks. Structure the output clearly with headings " +
		"(e.g., \"Key Issues\", \"Recent Activity\", \"Potential Risks\").\n\n" +
		"Patient Data:\n" + b.String()
}

func orNoneRecorded(s string) string {
	if s == "" {
		return "None recorded"
	}
	return s
}

func cacheKey(patientID, prompt string) string {
	h := fnv.New64a()
	h.Write([]byte(prompt))
	return fmt.Sprintf("%s:%x", patientID, h.Sum64())
}

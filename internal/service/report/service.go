package report

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/repository"
)

type ReportService interface {
	GetAnonymizedHealthData(ctx context.Context) (*model.AnonymizedHealthData, error)
}

// Service derives population statistics from the patient collection on
// demand. Nothing is cached or incrementally maintained: two calls with no
// intervening mutation produce identical output, and every call reflects the
// store as it is now.
type Service struct {
	patients repository.PatientRepository
	now      func() time.Time
}

func NewService(patients repository.PatientRepository) *Service {
	return &Service{
		patients: patients,
		now:      time.Now,
	}
}

// NewServiceAt pins the reference date used for age computation; the age
// bands depend on "today".
func NewServiceAt(patients repository.PatientRepository, now func() time.Time) *Service {
	return &Service{
		patients: patients,
		now:      now,
	}
}

// GetAnonymizedHealthData iterates the patient collection once and
// accumulates identifier-free tallies. Every enum key is present in the
// output even when its count is zero.
func (s *Service) GetAnonymizedHealthData(ctx context.Context) (*model.AnonymizedHealthData, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	data := &model.AnonymizedHealthData{
		TotalPatients: len(patients),
		GenderDistribution: map[model.Gender]int{
			model.GenderMale:   0,
			model.GenderFemale: 0,
			model.GenderOther:  0,
		},
		AgeDemographics:        map[string]int{},
		ChronicConditions:      map[string]int{},
		BloodGroupDistribution: map[model.BloodGroup]int{},
	}
	for _, band := range model.AgeBands {
		data.AgeDemographics[band] = 0
	}
	for _, bg := range model.BloodGroups {
		data.BloodGroupDistribution[bg] = 0
	}

	today := s.now()
	for _, p := range patients {
		data.GenderDistribution[p.Gender]++
		data.BloodGroupDistribution[p.BloodGroup]++
		data.AgeDemographics[ageBand(p.DateOfBirth, today)]++
		tallyConditions(data.ChronicConditions, p.MedicalHistory.ChronicConditions)
	}

	return data, nil
}

// ageBand buckets a date of birth into one of the four fixed bands. Age is
// calendar-year subtraction, minus one if today's month/day precedes the
// birthday. An unparseable date falls through to the open-ended band.
func ageBand(dateOfBirth string, today time.Time) string {
	born, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return "56+"
	}

	age := today.Year() - born.Year()
	if today.Month() < born.Month() || (today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}

	switch {
	case age <= 17:
		return "0-17"
	case age <= 35:
		return "18-35"
	case age <= 55:
		return "36-55"
	default:
		return "56+"
	}
}

// tallyConditions splits the free-text chronic-conditions field on commas,
// trims and lower-cases each token, discards empties and re-capitalizes the
// first rune to form the display key. Distinct casings and spacings of the
// same condition collapse to one key. The literal token "none" is counted
// like any other; no semantic filtering of negative responses happens here.
func tallyConditions(tally map[string]int, conditions string) {
	for _, token := range strings.Split(conditions, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		tally[capitalize(token)]++
	}
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/repository/memory"
)

var fixedToday = func() time.Time {
	return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func seedPatient(t *testing.T, repo *memory.PatientRepo, p *model.Patient) {
	t.Helper()
	_, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
}

func basePatient(email string, gender model.Gender, bg model.BloodGroup, dob, conditions string) *model.Patient {
	return &model.Patient{
		FirstName:   "Stat",
		LastName:    "Patient",
		Email:       email,
		DateOfBirth: dob,
		Gender:      gender,
		BloodGroup:  bg,
		Password:    "Password1",
		MedicalHistory: model.MedicalHistory{
			ChronicConditions: conditions,
		},
		EmergencyContacts: []model.EmergencyContact{
			{Name: "Next of Kin", Relationship: "Sibling", Phone: "111-111-1111"},
		},
	}
}

func TestAggregationOverTwoPatients(t *testing.T) {
	store := memory.NewStore(memory.Options{})
	repo := memory.NewPatientRepository(store)
	seedPatient(t, repo, basePatient("a@test.com", model.GenderMale, model.BloodOPositive, "1985-05-15", "Hypertension, Asthma"))
	seedPatient(t, repo, basePatient("b@test.com", model.GenderFemale, model.BloodANegative, "1992-11-20", "None"))

	svc := NewServiceAt(repo, fixedToday)
	data, err := svc.GetAnonymizedHealthData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, data.TotalPatients)
	assert.Equal(t, map[model.Gender]int{
		model.GenderMale:   1,
		model.GenderFemale: 1,
		model.GenderOther:  0,
	}, data.GenderDistribution)

	// Born 1985-05-15 is 40 on 2025-06-01; born 1992-11-20 is 32.
	assert.Equal(t, map[string]int{
		"0-17":  0,
		"18-35": 1,
		"36-55": 1,
		"56+":   0,
	}, data.AgeDemographics)

	// "None" is counted like any other token; aggregation does not interpret
	// negative responses.
	assert.Equal(t, map[string]int{
		"Hypertension": 1,
		"Asthma":       1,
		"None":         1,
	}, data.ChronicConditions)

	assert.Equal(t, 1, data.BloodGroupDistribution[model.BloodOPositive])
	assert.Equal(t, 1, data.BloodGroupDistribution[model.BloodANegative])
	assert.Len(t, data.BloodGroupDistribution, len(model.BloodGroups))
	assert.Equal(t, 0, data.BloodGroupDistribution[model.BloodABNegative])
}

func TestAggregationOfEmptyStore(t *testing.T) {
	store := memory.NewStore(memory.Options{})
	svc := NewServiceAt(memory.NewPatientRepository(store), fixedToday)

	data, err := svc.GetAnonymizedHealthData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, data.TotalPatients)
	assert.Len(t, data.GenderDistribution, 3)
	assert.Len(t, data.AgeDemographics, len(model.AgeBands))
	assert.Len(t, data.BloodGroupDistribution, len(model.BloodGroups))
	assert.Empty(t, data.ChronicConditions)
	for band, count := range data.AgeDemographics {
		assert.Zero(t, count, band)
	}
}

func TestAggregationIsIdempotent(t *testing.T) {
	store := memory.NewStore(memory.Options{})
	repo := memory.NewPatientRepository(store)
	seedPatient(t, repo, basePatient("a@test.com", model.GenderMale, model.BloodOPositive, "1985-05-15", "Hypertension"))

	svc := NewServiceAt(repo, fixedToday)
	first, err := svc.GetAnonymizedHealthData(context.Background())
	require.NoError(t, err)
	second, err := svc.GetAnonymizedHealthData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConditionTokensCollapseOnCasingAndSpacing(t *testing.T) {
	store := memory.NewStore(memory.Options{})
	repo := memory.NewPatientRepository(store)
	seedPatient(t, repo, basePatient("a@test.com", model.GenderMale, model.BloodOPositive, "1985-05-15", "hypertension,  HYPERTENSION , Asthma,, "))
	seedPatient(t, repo, basePatient("b@test.com", model.GenderFemale, model.BloodANegative, "1992-11-20", "Hypertension"))

	svc := NewServiceAt(repo, fixedToday)
	data, err := svc.GetAnonymizedHealthData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"Hypertension": 3,
		"Asthma":       1,
	}, data.ChronicConditions)
}

func TestAgeBandBoundaries(t *testing.T) {
	today := fixedToday()

	cases := []struct {
		dob  string
		band string
	}{
		{"2010-06-02", "0-17"},
		{"2007-06-02", "0-17"},  // turns 18 tomorrow
		{"2007-06-01", "18-35"}, // 18th birthday is today
		{"1989-06-02", "18-35"}, // turns 36 tomorrow
		{"1989-06-01", "36-55"},
		{"1969-06-02", "36-55"}, // turns 56 tomorrow
		{"1969-06-01", "56+"},
		{"1940-01-01", "56+"},
		{"not-a-date", "56+"},
		{"", "56+"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.band, ageBand(tc.dob, today), "dob %q", tc.dob)
	}
}

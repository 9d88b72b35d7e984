package model

// AnonymizedHealthData is a point-in-time, identifier-free summary of the
// patient collection, safe for a non-clinical audience.
type AnonymizedHealthData struct {
	TotalPatients          int                `json:"totalPatients"`
	GenderDistribution     map[Gender]int     `json:"genderDistribution"`
	AgeDemographics        map[string]int     `json:"ageDemographics"`
	ChronicConditions      map[string]int     `json:"chronicConditions"`
	BloodGroupDistribution map[BloodGroup]int `json:"bloodGroupDistribution"`
}

// AgeBands are the fixed demographic buckets, in display order.
var AgeBands = []string{"0-17", "18-35", "36-55", "56+"}

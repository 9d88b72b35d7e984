package model

// VerificationStatus gates a doctor's access to patient records. Doctors
// start Pending; only an administrator moves them to a terminal state.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "Pending"
	VerificationVerified VerificationStatus = "Verified"
	VerificationRejected VerificationStatus = "Rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// Terminal reports whether the status is one of the two end states.
func (s VerificationStatus) Terminal() bool {
	return s == VerificationVerified || s == VerificationRejected
}

type Doctor struct {
	ID                 string             `json:"id"`
	FullName           string             `json:"fullName"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	Specialization     string             `json:"specialization"`
	ExperienceYears    int                `json:"experienceYears"`
	MedicalRegNumber   string             `json:"medicalRegNumber"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Password           string             `json:"password,omitempty"`
	RegistrationDocURL string             `json:"registrationDocumentUrl,omitempty"`
}

type RegisterDoctorRequest struct {
	FullName           string `json:"fullName" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required"`
	Phone              string `json:"phone" binding:"required"`
	Specialization     string `json:"specialization" binding:"required"`
	ExperienceYears    int    `json:"experienceYears" binding:"min=0"`
	MedicalRegNumber   string `json:"medicalRegNumber" binding:"required"`
	RegistrationDocURL string `json:"registrationDocumentUrl"`
}

// UpdateDoctorRequest is a partial update; nil means leave unchanged.
// VerificationStatus is excluded: status changes go through the verification
// workflow, never through a profile update.
type UpdateDoctorRequest struct {
	FullName           *string `json:"fullName"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Password           *string `json:"password"`
	Phone              *string `json:"phone"`
	Specialization     *string `json:"specialization"`
	ExperienceYears    *int    `json:"experienceYears"`
	MedicalRegNumber   *string `json:"medicalRegNumber"`
	RegistrationDocURL *string `json:"registrationDocumentUrl"`
}

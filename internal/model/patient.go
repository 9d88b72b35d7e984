package model

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type BloodGroup string

const (
	BloodAPositive  BloodGroup = "A+"
	BloodANegative  BloodGroup = "A-"
	BloodBPositive  BloodGroup = "B+"
	BloodBNegative  BloodGroup = "B-"
	BloodABPositive BloodGroup = "AB+"
	BloodABNegative BloodGroup = "AB-"
	BloodOPositive  BloodGroup = "O+"
	BloodONegative  BloodGroup = "O-"
)

// BloodGroups lists all eight values in display order.
var BloodGroups = []BloodGroup{
	BloodAPositive, BloodANegative,
	BloodBPositive, BloodBNegative,
	BloodABPositive, BloodABNegative,
	BloodOPositive, BloodONegative,
}

func (b BloodGroup) Valid() bool {
	for _, g := range BloodGroups {
		if b == g {
			return true
		}
	}
	return false
}

type EmergencyContact struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
}

type MedicalHistory struct {
	Allergies          string `json:"allergies"`
	ChronicConditions  string `json:"chronicConditions"`
	CurrentMedications string `json:"currentMedications"`
	Surgeries          string `json:"surgeries"`
	FamilyHistory      string `json:"familyHistory"`
	Vaccinations       string `json:"vaccinations"`
}

// Patient is the authoritative patient record. LookupToken is assigned equal
// to ID at registration and never changes; it is the payload of the patient's
// scannable identity artifact.
type Patient struct {
	ID                string             `json:"id"`
	FirstName         string             `json:"firstName"`
	LastName          string             `json:"lastName"`
	Email             string             `json:"email"`
	DateOfBirth       string             `json:"dateOfBirth"`
	Gender            Gender             `json:"gender"`
	Phone             string             `json:"phone"`
	Address           string             `json:"address"`
	BloodGroup        BloodGroup         `json:"bloodGroup"`
	LookupToken       string             `json:"qrCodeUrl"`
	Password          string             `json:"password,omitempty"`
	MedicalHistory    MedicalHistory     `json:"medicalHistory"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	MedicalNotes      []MedicalNote      `json:"medicalNotes"`
	Prescriptions     []Prescription     `json:"prescriptions"`
	LabOrders         []LabOrder         `json:"labOrders"`
}

type RegisterPatientRequest struct {
	FirstName         string             `json:"firstName" binding:"required"`
	LastName          string             `json:"lastName" binding:"required"`
	Email             string             `json:"email" binding:"required,email"`
	Password          string             `json:"password" binding:"required"`
	DateOfBirth       string             `json:"dateOfBirth" binding:"required"`
	Gender            Gender             `json:"gender" binding:"required"`
	Phone             string             `json:"phone" binding:"required"`
	Address           string             `json:"address" binding:"required"`
	BloodGroup        BloodGroup         `json:"bloodGroup" binding:"required"`
	MedicalHistory    MedicalHistory     `json:"medicalHistory"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts" binding:"required,min=1,dive"`
}

// UpdatePatientRequest carries a partial update: nil fields are left
// unchanged, non-nil fields overwrite. ID and LookupToken are immutable and
// deliberately absent.
type UpdatePatientRequest struct {
	FirstName         *string             `json:"firstName"`
	LastName          *string             `json:"lastName"`
	Email             *string             `json:"email" binding:"omitempty,email"`
	Password          *string             `json:"password"`
	DateOfBirth       *string             `json:"dateOfBirth"`
	Gender            *Gender             `json:"gender"`
	Phone             *string             `json:"phone"`
	Address           *string             `json:"address"`
	BloodGroup        *BloodGroup         `json:"bloodGroup"`
	MedicalHistory    *MedicalHistory     `json:"medicalHistory"`
	EmergencyContacts *[]EmergencyContact `json:"emergencyContacts"`
}

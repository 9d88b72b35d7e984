package model

// Clinical sub-records are append-only: the public contract exposes no update
// or delete for individual notes, prescriptions or lab orders. Corrections
// are modeled as new entries.

type LabStatus string

const (
	LabStatusOrdered   LabStatus = "Ordered"
	LabStatusPending   LabStatus = "Pending"
	LabStatusCompleted LabStatus = "Completed"
)

func (s LabStatus) Valid() bool {
	switch s {
	case LabStatusOrdered, LabStatusPending, LabStatusCompleted:
		return true
	}
	return false
}

type MedicalNote struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	Date       string `json:"date"`
	DoctorName string `json:"doctorName"`
	Note       string `json:"note"`
}

type Prescription struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	Date       string `json:"date"`
	DoctorName string `json:"doctorName"`
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
}

type LabOrder struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	Date       string    `json:"date"`
	DoctorName string    `json:"doctorName"`
	TestName   string    `json:"testName"`
	Status     LabStatus `json:"status"`
}

type AddMedicalNoteRequest struct {
	Date       string `json:"date" binding:"required"`
	DoctorName string `json:"doctorName" binding:"required"`
	Note       string `json:"note" binding:"required"`
}

type AddPrescriptionRequest struct {
	Date       string `json:"date" binding:"required"`
	DoctorName string `json:"doctorName" binding:"required"`
	Medication string `json:"medication" binding:"required"`
	Dosage     string `json:"dosage" binding:"required"`
	Frequency  string `json:"frequency" binding:"required"`
}

type AddLabOrderRequest struct {
	Date       string    `json:"date" binding:"required"`
	DoctorName string    `json:"doctorName" binding:"required"`
	TestName   string    `json:"testName" binding:"required"`
	Status     LabStatus `json:"status" binding:"required"`
}

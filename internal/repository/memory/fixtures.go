package memory

import "github.com/ihdim5/healthrecord-api/internal/model"

// Seed fixtures mirror the reference data set: two demo patients, three demo
// doctors covering every verification state, and the two singleton accounts.

func seedAdmin() *model.Admin {
	return &model.Admin{
		ID:       "A001",
		Email:    "admin@ihdim5.com",
		Role:     model.RoleAdmin,
		Password: "password123",
	}
}

func seedGovernment() *model.Government {
	return &model.Government{
		ID:         "G001",
		AgencyName: "Ministry of Health",
		Email:      "gov@ihdim5.com",
		Role:       model.RoleGovernment,
		Password:   "password123",
	}
}

func seedPatients() []*model.Patient {
	return []*model.Patient{
		{
			ID:          "P0001",
			FirstName:   "John",
			LastName:    "Doe",
			Email:       "patient@test.com",
			DateOfBirth: "1985-05-15",
			Gender:      model.GenderMale,
			Phone:       "123-456-7890",
			Address:     "123 Health St, Wellness City",
			BloodGroup:  model.BloodOPositive,
			LookupToken: "P0001",
			Password:    "password123",
			MedicalHistory: model.MedicalHistory{
				Allergies:          "Pollen, Penicillin",
				ChronicConditions:  "Hypertension, Asthma",
				CurrentMedications: "Lisinopril 10mg, Albuterol Inhaler",
				Surgeries:          "Appendectomy (2005)",
				FamilyHistory:      "Heart disease (Father)",
				Vaccinations:       "COVID-19, Flu Shot (2023)",
			},
			EmergencyContacts: []model.EmergencyContact{
				{Name: "Jane Doe", Relationship: "Spouse", Phone: "098-765-4321"},
			},
			MedicalNotes: []model.MedicalNote{
				{ID: "N001", PatientID: "P0001", Date: "2023-10-26", DoctorName: "Dr. Alice", Note: "Patient presented with seasonal allergy symptoms. Advised to continue current medication."},
				{ID: "N002", PatientID: "P0001", Date: "2024-01-15", DoctorName: "Dr. Alice", Note: "Routine check-up. Blood pressure is well-controlled. Continue Lisinopril."},
			},
			Prescriptions: []model.Prescription{
				{ID: "PR001", PatientID: "P0001", Date: "2024-01-15", DoctorName: "Dr. Alice", Medication: "Lisinopril", Dosage: "10mg", Frequency: "Once daily"},
			},
			LabOrders: []model.LabOrder{
				{ID: "L001", PatientID: "P0001", Date: "2024-01-15", DoctorName: "Dr. Alice", TestName: "Lipid Panel", Status: model.LabStatusCompleted},
			},
		},
		{
			ID:          "P0002",
			FirstName:   "Jane",
			LastName:    "Smith",
			Email:       "jane.smith@test.com",
			DateOfBirth: "1992-11-20",
			Gender:      model.GenderFemale,
			Phone:       "555-123-4567",
			Address:     "456 Care Ave, Meditown",
			BloodGroup:  model.BloodANegative,
			LookupToken: "P0002",
			Password:    "password123",
			MedicalHistory: model.MedicalHistory{
				Allergies:          "None",
				ChronicConditions:  "None",
				CurrentMedications: "None",
				Surgeries:          "None",
				FamilyHistory:      "None",
				Vaccinations:       "COVID-19",
			},
			EmergencyContacts: []model.EmergencyContact{
				{Name: "John Smith", Relationship: "Husband", Phone: "555-987-6543"},
			},
			MedicalNotes:  []model.MedicalNote{},
			Prescriptions: []model.Prescription{},
			LabOrders:     []model.LabOrder{},
		},
	}
}

func seedDoctors() []*model.Doctor {
	return []*model.Doctor{
		{
			ID:                 "D001",
			FullName:           "Dr. Alice",
			Email:              "doctor@test.com",
			Phone:              "111-222-3333",
			Specialization:     "Cardiology",
			ExperienceYears:    15,
			MedicalRegNumber:   "MD-12345",
			VerificationStatus: model.VerificationVerified,
			Password:           "password123",
		},
		{
			ID:                 "D002",
			FullName:           "Dr. Bob",
			Email:              "bob.pending@test.com",
			Phone:              "444-555-6666",
			Specialization:     "Pediatrics",
			ExperienceYears:    8,
			MedicalRegNumber:   "MD-67890",
			VerificationStatus: model.VerificationPending,
			Password:           "password123",
		},
		{
			ID:                 "D003",
			FullName:           "Dr. Carol",
			Email:              "carol.rejected@test.com",
			Phone:              "777-888-9999",
			Specialization:     "Dermatology",
			ExperienceYears:    5,
			MedicalRegNumber:   "MD-54321",
			VerificationStatus: model.VerificationRejected,
			Password:           "password123",
		},
	}
}

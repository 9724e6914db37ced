package memory

import (
	"time"

	"github.com/jwalitptl/hospiflow/internal/model"
)

// NewSeededStore returns a store loaded with the demo hospital data. Chat
// timestamps are placed relative to now.
func NewSeededStore(now time.Time) *Store {
	s := NewStore()

	s.hospital = model.Hospital{
		ID:             "1",
		Name:           "HospiFlow Medical Center",
		Address:        "123 Healthcare Avenue, Medical District, City 12345",
		Phone:          "+1 (555) 123-4567",
		Email:          "info@hospiflow.com",
		License:        "HL-2024-001234",
		Accreditation:  "Joint Commission Accredited",
		OperatingHours: "24/7 Emergency Services",
	}

	s.patients = []*model.Patient{
		{
			ID:          "P001",
			FirstName:   "John",
			LastName:    "Doe",
			DateOfBirth: "1985-03-15",
			Gender:      model.GenderMale,
			Phone:       "+1 (555) 234-5678",
			Email:       "john.doe@email.com",
			Address:     "456 Patient Street, City",
			BloodType:   "O+",
			Allergies:   []string{"Penicillin"},
			Insurance:   "Blue Cross",
			EmergencyContact: model.EmergencyContact{
				Name:         "Jane Doe",
				Phone:        "+1 (555) 234-5679",
				Relationship: "Spouse",
			},
		},
		{
			ID:          "P002",
			FirstName:   "Mary",
			LastName:    "Smith",
			DateOfBirth: "1990-07-22",
			Gender:      model.GenderFemale,
			Phone:       "+1 (555) 345-6789",
			Email:       "mary.smith@email.com",
			Address:     "789 Health Road, City",
			BloodType:   "A+",
			Allergies:   []string{},
			Insurance:   "Aetna",
			EmergencyContact: model.EmergencyContact{
				Name:         "Robert Smith",
				Phone:        "+1 (555) 345-6790",
				Relationship: "Father",
			},
		},
		{
			ID:          "P003",
			FirstName:   "James",
			LastName:    "Wilson",
			DateOfBirth: "1978-11-30",
			Gender:      model.GenderMale,
			Phone:       "+1 (555) 456-7890",
			Email:       "james.wilson@email.com",
			Address:     "321 Wellness Blvd, City",
			BloodType:   "B+",
			Allergies:   []string{"Sulfa drugs"},
			Insurance:   "United Healthcare",
			EmergencyContact: model.EmergencyContact{
				Name:         "Lisa Wilson",
				Phone:        "+1 (555) 456-7891",
				Relationship: "Wife",
			},
		},
	}

	s.staff = []*model.Staff{
		{ID: "S001", FirstName: "Sarah", LastName: "Johnson", Role: model.RoleDoctor, Department: "General Medicine", Email: "sarah.johnson@hospiflow.com", Phone: "+1 (555) 111-2222", Qualification: "MD, Internal Medicine", JoinDate: "2020-01-15", Status: model.StaffStatusActive},
		{ID: "S002", FirstName: "Emily", LastName: "Davis", Role: model.RoleNurse, Department: "Emergency", Email: "emily.davis@hospiflow.com", Phone: "+1 (555) 222-3333", Qualification: "RN, BSN", JoinDate: "2021-03-20", Status: model.StaffStatusActive},
		{ID: "S003", FirstName: "Michael", LastName: "Chen", Role: model.RolePharmacist, Department: "Pharmacy", Email: "michael.chen@hospiflow.com", Phone: "+1 (555) 333-4444", Qualification: "PharmD", JoinDate: "2019-08-10", Status: model.StaffStatusActive},
		{ID: "S004", FirstName: "Robert", LastName: "Martinez", Role: model.RoleLabTech, Department: "Laboratory", Email: "robert.martinez@hospiflow.com", Phone: "+1 (555) 444-5555", Qualification: "MLT Certified", JoinDate: "2022-02-01", Status: model.StaffStatusActive},
	}

	s.medicines = []*model.Medicine{
		{ID: "M001", Name: "Amoxicillin 500mg", Category: "Antibiotic", Quantity: 500, Unit: "tablets", ExpiryDate: "2025-12-31", BatchNumber: "AMX-2024-001", ReorderLevel: 100, Price: 0.50},
		{ID: "M002", Name: "Ibuprofen 400mg", Category: "Pain Relief", Quantity: 800, Unit: "tablets", ExpiryDate: "2026-06-30", BatchNumber: "IBU-2024-002", ReorderLevel: 200, Price: 0.25},
		{ID: "M003", Name: "Metformin 850mg", Category: "Diabetes", Quantity: 300, Unit: "tablets", ExpiryDate: "2025-09-15", BatchNumber: "MET-2024-003", ReorderLevel: 150, Price: 0.75},
		{ID: "M004", Name: "Lisinopril 10mg", Category: "Cardiovascular", Quantity: 450, Unit: "tablets", ExpiryDate: "2026-03-20", BatchNumber: "LIS-2024-004", ReorderLevel: 100, Price: 0.60},
	}

	s.labTests = []*model.LabTest{
		{ID: "L001", PatientID: "P001", TestName: "Complete Blood Count (CBC)", OrderedBy: "Dr. Sarah Johnson", OrderedDate: "2026-01-02", Status: model.LabTestStatusCompleted, Results: "WBC: 7.5, RBC: 4.8, Hemoglobin: 14.2 g/dL - Normal", CompletedDate: "2026-01-02"},
		{ID: "L002", PatientID: "P002", TestName: "Lipid Panel", OrderedBy: "Dr. Sarah Johnson", OrderedDate: "2026-01-03", Status: model.LabTestStatusInProgress},
		{ID: "L003", PatientID: "P003", TestName: "Blood Glucose", OrderedBy: "Dr. Sarah Johnson", OrderedDate: "2026-01-03", Status: model.LabTestStatusPending},
	}

	s.prescriptions = []*model.Prescription{
		{
			ID:        "RX001",
			PatientID: "P001",
			DoctorID:  "S001",
			Medicines: []model.PrescribedMedicine{
				{MedicineID: "M001", Dosage: "500mg", Frequency: "Three times daily", Duration: "7 days"},
			},
			Date:   "2026-01-02",
			Status: model.PrescriptionStatusDispensed,
		},
		{
			ID:        "RX002",
			PatientID: "P002",
			DoctorID:  "S001",
			Medicines: []model.PrescribedMedicine{
				{MedicineID: "M002", Dosage: "400mg", Frequency: "As needed", Duration: "14 days"},
			},
			Date:   "2026-01-03",
			Status: model.PrescriptionStatusPending,
		},
	}

	s.admissions = []*model.Admission{
		{ID: "A001", PatientID: "P001", WardID: "W001", BedNumber: "B-101", AdmissionDate: "2026-01-01", Diagnosis: "Pneumonia", Status: model.AdmissionStatusActive},
		{ID: "A002", PatientID: "P003", WardID: "W002", BedNumber: "B-205", AdmissionDate: "2025-12-30", DischargeDate: "2026-01-02", Diagnosis: "Appendicitis - Post Surgery", Status: model.AdmissionStatusDischarged},
	}

	stamp := func(ago time.Duration) string {
		return now.Add(-ago).UTC().Format(time.RFC3339)
	}
	s.messages = []*model.ChatMessage{
		{ID: "1", SenderID: "S001", SenderName: "Dr. Sarah Johnson", Message: "Patient in Room 205 needs immediate attention", Timestamp: stamp(time.Hour), Department: "General Medicine"},
		{ID: "2", SenderID: "S002", SenderName: "Emily Davis", Message: "On my way to Room 205", Timestamp: stamp(3500 * time.Second), Department: "Emergency"},
		{ID: "3", SenderID: "S003", SenderName: "Michael Chen", Message: "Prescription RX002 is ready for pickup", Timestamp: stamp(30 * time.Minute), Department: "Pharmacy"},
		{ID: "4", SenderID: "S004", SenderName: "Robert Martinez", Message: "Lab results for Patient P001 are now available", Timestamp: stamp(15 * time.Minute), Department: "Laboratory"},
	}
	s.nextMessageID = len(s.messages) + 1

	return s
}

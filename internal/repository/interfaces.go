package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/hospiflow/internal/model"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when creating a record whose id is taken.
var ErrAlreadyExists = errors.New("record already exists")

// ErrStatusChanged is returned by a transition when the record is no longer in
// the expected status.
var ErrStatusChanged = errors.New("record status changed")

// All repository interfaces in one file
type (
	HospitalRepository interface {
		GetHospital(ctx context.Context) (*model.Hospital, error)
		UpdateHospital(ctx context.Context, hospital *model.Hospital) error
	}

	PatientRepository interface {
		GetPatient(ctx context.Context, id string) (*model.Patient, error)
		ListPatients(ctx context.Context) ([]*model.Patient, error)
	}

	StaffRepository interface {
		CreateStaff(ctx context.Context, staff *model.Staff) error
		GetStaff(ctx context.Context, id string) (*model.Staff, error)
		UpdateStaff(ctx context.Context, staff *model.Staff) error
		DeleteStaff(ctx context.Context, id string) error
		ListStaff(ctx context.Context) ([]*model.Staff, error)
	}

	MedicineRepository interface {
		GetMedicine(ctx context.Context, id string) (*model.Medicine, error)
		ListMedicines(ctx context.Context) ([]*model.Medicine, error)
	}

	LabTestRepository interface {
		GetLabTest(ctx context.Context, id string) (*model.LabTest, error)
		// TransitionLabTest applies fn to the test only while its status is
		// still from, in one step. On ErrStatusChanged the current record is
		// returned alongside the error.
		TransitionLabTest(ctx context.Context, id string, from model.LabTestStatus, fn func(*model.LabTest)) (*model.LabTest, error)
		ListLabTests(ctx context.Context) ([]*model.LabTest, error)
	}

	PrescriptionRepository interface {
		GetPrescription(ctx context.Context, id string) (*model.Prescription, error)
		TransitionPrescription(ctx context.Context, id string, from model.PrescriptionStatus, fn func(*model.Prescription)) (*model.Prescription, error)
		ListPrescriptions(ctx context.Context) ([]*model.Prescription, error)
	}

	AdmissionRepository interface {
		GetAdmission(ctx context.Context, id string) (*model.Admission, error)
		TransitionAdmission(ctx context.Context, id string, from model.AdmissionStatus, fn func(*model.Admission)) (*model.Admission, error)
		ListAdmissions(ctx context.Context) ([]*model.Admission, error)
	}

	ChatRepository interface {
		AppendMessage(ctx context.Context, msg *model.ChatMessage) error
		ListMessages(ctx context.Context) ([]*model.ChatMessage, error)
	}

	// SessionRepository is the durable key/value record behind the session store.
	SessionRepository interface {
		Save(ctx context.Context, key string, value []byte, ttl time.Duration) error
		Load(ctx context.Context, key string) ([]byte, error)
		// Delete reports whether a record was removed.
		Delete(ctx context.Context, key string) (bool, error)
		Ping(ctx context.Context) error
		Close() error
	}

	// Registry is the full set of domain repositories shared by every module.
	Registry interface {
		HospitalRepository
		PatientRepository
		StaffRepository
		MedicineRepository
		LabTestRepository
		PrescriptionRepository
		AdmissionRepository
		ChatRepository
	}
)

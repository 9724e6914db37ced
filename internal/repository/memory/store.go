// Package memory holds the in-process domain registry. A single Store backs
// every module so a mutation made through one module is visible to all.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
)

var _ repository.Registry = (*Store)(nil)

// Store keeps every collection in insertion order. Reads hand out copies so
// callers never observe a record changing underneath them.
type Store struct {
	mu sync.RWMutex

	hospital      model.Hospital
	patients      []*model.Patient
	staff         []*model.Staff
	medicines     []*model.Medicine
	labTests      []*model.LabTest
	prescriptions []*model.Prescription
	admissions    []*model.Admission
	messages      []*model.ChatMessage
	nextMessageID int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextMessageID: 1}
}

func (s *Store) GetHospital(ctx context.Context) (*model.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.hospital
	return &h, nil
}

func (s *Store) UpdateHospital(ctx context.Context, hospital *model.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := *hospital
	h.ID = s.hospital.ID
	s.hospital = h
	return nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.patients {
		if p.ID == id {
			return clonePatient(p), nil
		}
	}
	return nil, fmt.Errorf("patient %s: %w", id, repository.ErrNotFound)
}

func (s *Store) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, clonePatient(p))
	}
	return out, nil
}

func (s *Store) CreateStaff(ctx context.Context, staff *model.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.staffIndex(staff.ID) >= 0 {
		return fmt.Errorf("staff %s: %w", staff.ID, repository.ErrAlreadyExists)
	}
	st := *staff
	s.staff = append(s.staff, &st)
	return nil
}

func (s *Store) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.staffIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("staff %s: %w", id, repository.ErrNotFound)
	}
	st := *s.staff[i]
	return &st, nil
}

func (s *Store) UpdateStaff(ctx context.Context, staff *model.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.staffIndex(staff.ID)
	if i < 0 {
		return fmt.Errorf("staff %s: %w", staff.ID, repository.ErrNotFound)
	}
	st := *staff
	s.staff[i] = &st
	return nil
}

func (s *Store) DeleteStaff(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.staffIndex(id)
	if i < 0 {
		return fmt.Errorf("staff %s: %w", id, repository.ErrNotFound)
	}
	s.staff = append(s.staff[:i], s.staff[i+1:]...)
	return nil
}

func (s *Store) ListStaff(ctx context.Context) ([]*model.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Staff, 0, len(s.staff))
	for _, st := range s.staff {
		c := *st
		out = append(out, &c)
	}
	return out, nil
}

func (s *Store) staffIndex(id string) int {
	for i, st := range s.staff {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) GetMedicine(ctx context.Context, id string) (*model.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.medicines {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, fmt.Errorf("medicine %s: %w", id, repository.ErrNotFound)
}

func (s *Store) ListMedicines(ctx context.Context) ([]*model.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Medicine, 0, len(s.medicines))
	for _, m := range s.medicines {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (s *Store) GetLabTest(ctx context.Context, id string) (*model.LabTest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.labTests {
		if t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, fmt.Errorf("lab test %s: %w", id, repository.ErrNotFound)
}

// TransitionLabTest holds the write lock across the status check and fn.
func (s *Store) TransitionLabTest(ctx context.Context, id string, from model.LabTestStatus, fn func(*model.LabTest)) (*model.LabTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.labTests {
		if t.ID != id {
			continue
		}
		c := *t
		if c.Status != from {
			return &c, fmt.Errorf("lab test %s is %s: %w", id, c.Status, repository.ErrStatusChanged)
		}
		fn(&c)
		stored := c
		s.labTests[i] = &stored
		return &c, nil
	}
	return nil, fmt.Errorf("lab test %s: %w", id, repository.ErrNotFound)
}

func (s *Store) ListLabTests(ctx context.Context) ([]*model.LabTest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.LabTest, 0, len(s.labTests))
	for _, t := range s.labTests {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

func (s *Store) GetPrescription(ctx context.Context, id string) (*model.Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.prescriptions {
		if p.ID == id {
			return clonePrescription(p), nil
		}
	}
	return nil, fmt.Errorf("prescription %s: %w", id, repository.ErrNotFound)
}

func (s *Store) TransitionPrescription(ctx context.Context, id string, from model.PrescriptionStatus, fn func(*model.Prescription)) (*model.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.prescriptions {
		if p.ID != id {
			continue
		}
		c := clonePrescription(p)
		if c.Status != from {
			return c, fmt.Errorf("prescription %s is %s: %w", id, c.Status, repository.ErrStatusChanged)
		}
		fn(c)
		s.prescriptions[i] = clonePrescription(c)
		return c, nil
	}
	return nil, fmt.Errorf("prescription %s: %w", id, repository.ErrNotFound)
}

func (s *Store) ListPrescriptions(ctx context.Context) ([]*model.Prescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Prescription, 0, len(s.prescriptions))
	for _, p := range s.prescriptions {
		out = append(out, clonePrescription(p))
	}
	return out, nil
}

func (s *Store) GetAdmission(ctx context.Context, id string) (*model.Admission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.admissions {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, fmt.Errorf("admission %s: %w", id, repository.ErrNotFound)
}

func (s *Store) TransitionAdmission(ctx context.Context, id string, from model.AdmissionStatus, fn func(*model.Admission)) (*model.Admission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.admissions {
		if a.ID != id {
			continue
		}
		c := *a
		if c.Status != from {
			return &c, fmt.Errorf("admission %s is %s: %w", id, c.Status, repository.ErrStatusChanged)
		}
		fn(&c)
		stored := c
		s.admissions[i] = &stored
		return &c, nil
	}
	return nil, fmt.Errorf("admission %s: %w", id, repository.ErrNotFound)
}

func (s *Store) ListAdmissions(ctx context.Context) ([]*model.Admission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Admission, 0, len(s.admissions))
	for _, a := range s.admissions {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

// AppendMessage assigns the next sequential id when msg.ID is empty.
func (s *Store) AppendMessage(ctx context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = strconv.Itoa(s.nextMessageID)
	}
	s.nextMessageID++
	c := *msg
	s.messages = append(s.messages, &c)
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.ChatMessage, 0, len(s.messages))
	for _, m := range s.messages {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func clonePatient(p *model.Patient) *model.Patient {
	c := *p
	c.Allergies = append([]string{}, p.Allergies...)
	return &c
}

func clonePrescription(p *model.Prescription) *model.Prescription {
	c := *p
	c.Medicines = append([]model.PrescribedMedicine{}, p.Medicines...)
	return &c
}

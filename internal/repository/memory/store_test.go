package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
)

func TestSeededStoreCounts(t *testing.T) {
	ctx := context.Background()
	s := NewSeededStore(time.Now())

	patients, err := s.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 3)

	staff, _ := s.ListStaff(ctx)
	assert.Len(t, staff, 4)
	medicines, _ := s.ListMedicines(ctx)
	assert.Len(t, medicines, 4)
	tests, _ := s.ListLabTests(ctx)
	assert.Len(t, tests, 3)
	prescriptions, _ := s.ListPrescriptions(ctx)
	assert.Len(t, prescriptions, 2)
	admissions, _ := s.ListAdmissions(ctx)
	assert.Len(t, admissions, 2)
	messages, _ := s.ListMessages(ctx)
	assert.Len(t, messages, 4)

	h, err := s.GetHospital(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HospiFlow Medical Center", h.Name)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := NewSeededStore(time.Now())

	p, err := s.GetPatient(ctx, "P001")
	require.NoError(t, err)
	p.FirstName = "Changed"
	p.Allergies[0] = "None"

	again, _ := s.GetPatient(ctx, "P001")
	assert.Equal(t, "John", again.FirstName)
	assert.Equal(t, []string{"Penicillin"}, again.Allergies)
}

func TestStaffLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSeededStore(time.Now())

	err := s.CreateStaff(ctx, &model.Staff{ID: "S001"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	require.NoError(t, s.CreateStaff(ctx, &model.Staff{ID: "S005", FirstName: "Ann"}))
	st, err := s.GetStaff(ctx, "S005")
	require.NoError(t, err)
	assert.Equal(t, "Ann", st.FirstName)

	st.FirstName = "Anna"
	require.NoError(t, s.UpdateStaff(ctx, st))
	st, _ = s.GetStaff(ctx, "S005")
	assert.Equal(t, "Anna", st.FirstName)

	require.NoError(t, s.DeleteStaff(ctx, "S002"))
	_, err = s.GetStaff(ctx, "S002")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.DeleteStaff(ctx, "S002"), repository.ErrNotFound)

	all, _ := s.ListStaff(ctx)
	ids := make([]string, 0, len(all))
	for _, x := range all {
		ids = append(ids, x.ID)
	}
	assert.Equal(t, []string{"S001", "S003", "S004", "S005"}, ids)
}

func TestAppendMessageAssignsSequentialID(t *testing.T) {
	ctx := context.Background()
	s := NewSeededStore(time.Now())

	msg := &model.ChatMessage{SenderID: "1", Message: "hello"}
	require.NoError(t, s.AppendMessage(ctx, msg))
	assert.Equal(t, "5", msg.ID)

	all, _ := s.ListMessages(ctx)
	require.Len(t, all, 5)
	assert.Equal(t, "hello", all[4].Message)
}

func TestUpdateHospitalKeepsID(t *testing.T) {
	ctx := context.Background()
	s := NewSeededStore(time.Now())

	require.NoError(t, s.UpdateHospital(ctx, &model.Hospital{ID: "other", Name: "New"}))
	h, _ := s.GetHospital(ctx)
	assert.Equal(t, "1", h.ID)
	assert.Equal(t, "New", h.Name)
}

func TestTransitionChecksStatusUnderLock(t *testing.T) {
	ctx := context.Background()
	s := NewSeededStore(time.Now())

	called := false
	current, err := s.TransitionLabTest(ctx, "L001", model.LabTestStatusPending, func(*model.LabTest) { called = true })
	assert.ErrorIs(t, err, repository.ErrStatusChanged)
	assert.False(t, called)
	require.NotNil(t, current)
	assert.Equal(t, model.LabTestStatusCompleted, current.Status)

	updated, err := s.TransitionLabTest(ctx, "L003", model.LabTestStatusPending, func(t *model.LabTest) {
		t.Status = model.LabTestStatusInProgress
	})
	require.NoError(t, err)
	assert.Equal(t, model.LabTestStatusInProgress, updated.Status)

	updated.Status = model.LabTestStatusPending
	stored, _ := s.GetLabTest(ctx, "L003")
	assert.Equal(t, model.LabTestStatusInProgress, stored.Status)

	_, err = s.TransitionLabTest(ctx, "L404", model.LabTestStatusPending, func(*model.LabTest) {})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	p, err := s.TransitionPrescription(ctx, "RX001", model.PrescriptionStatusPending, func(*model.Prescription) {})
	assert.ErrorIs(t, err, repository.ErrStatusChanged)
	assert.Equal(t, model.PrescriptionStatusDispensed, p.Status)

	a, err := s.TransitionAdmission(ctx, "A002", model.AdmissionStatusActive, func(*model.Admission) {})
	assert.ErrorIs(t, err, repository.ErrStatusChanged)
	assert.Equal(t, model.AdmissionStatusDischarged, a.Status)
}

func TestConcurrentTransitionsApplyOnce(t *testing.T) {
	ctx := context.Background()
	s := NewSeededStore(time.Now())

	var wg sync.WaitGroup
	var applied atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.TransitionAdmission(ctx, "A001", model.AdmissionStatusActive, func(a *model.Admission) {
				a.Status = model.AdmissionStatusDischarged
			})
			if err == nil {
				applied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), applied.Load())
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepository(time.Minute)

	require.NoError(t, r.Save(ctx, "hospiflow_user:abc", []byte(`{"id":"1"}`), time.Minute))
	v, err := r.Load(ctx, "hospiflow_user:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(v))

	removed, err := r.Delete(ctx, "hospiflow_user:abc")
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = r.Load(ctx, "hospiflow_user:abc")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	removed, err = r.Delete(ctx, "hospiflow_user:abc")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, r.Close())
}

package repofake

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gymstack/gymstack/appointments"
	apperrors "github.com/gymstack/gymstack/internal/errors"
)

var _ appointments.Repo = (*FakeAppointmentRepo)(nil)

// FakeAppointmentRepo is an in-memory appointment store for tests.
type FakeAppointmentRepo struct {
	records map[string]*appointments.Appointment
	lock    sync.RWMutex
}

func NewFakeAppointmentRepo() *FakeAppointmentRepo {
	return &FakeAppointmentRepo{
		records: make(map[string]*appointments.Appointment),
	}
}

func (r *FakeAppointmentRepo) Upsert(a *appointments.Appointment) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	copied := *a
	r.records[a.ID] = &copied
	return nil
}

func (r *FakeAppointmentRepo) Delete(id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.records[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *FakeAppointmentRepo) Get(id string) (*appointments.Appointment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	a, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *FakeAppointmentRepo) ListByGym(gymID string) ([]*appointments.Appointment, error) {
	return r.listWhere(func(a *appointments.Appointment) bool { return a.GymID == gymID })
}

func (r *FakeAppointmentRepo) ListByTrainer(trainerID string) ([]*appointments.Appointment, error) {
	return r.listWhere(func(a *appointments.Appointment) bool { return a.TrainerID == trainerID })
}

func (r *FakeAppointmentRepo) ListByMember(memberID string) ([]*appointments.Appointment, error) {
	return r.listWhere(func(a *appointments.Appointment) bool { return a.MemberID == memberID })
}

func (r *FakeAppointmentRepo) listWhere(match func(*appointments.Appointment) bool) ([]*appointments.Appointment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var out []*appointments.Appointment
	for _, a := range r.records {
		if match(a) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

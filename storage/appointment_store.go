package storage

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gymstack/gymstack/appointments"
	apperrors "github.com/gymstack/gymstack/internal/errors"
)

// Key layout:
//
//	appointment:<id>                        -> Appointment JSON
//	appointment_gym:<gymID>:<id>            -> id
//	appointment_trainer:<trainerID>:<id>    -> id
//	appointment_member:<memberID>:<id>      -> id
type AppointmentStore struct {
	db *badger.DB
}

var _ appointments.Repo = (*AppointmentStore)(nil)

func NewAppointmentStore(db *badger.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

func appointmentKey(id string) string {
	return "appointment:" + id
}

func (s *AppointmentStore) indexKeys(a *appointments.Appointment) []string {
	return []string{
		"appointment_gym:" + a.GymID + ":" + a.ID,
		"appointment_trainer:" + a.TrainerID + ":" + a.ID,
		"appointment_member:" + a.MemberID + ":" + a.ID,
	}
}

func (s *AppointmentStore) Upsert(a *appointments.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing appointments.Appointment
		err := getDoc(txn, appointmentKey(a.ID), &existing)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err == nil {
			for _, key := range s.indexKeys(&existing) {
				if err := txn.Delete([]byte(key)); err != nil {
					return err
				}
			}
		}
		if err := putDoc(txn, appointmentKey(a.ID), a); err != nil {
			return err
		}
		for _, key := range s.indexKeys(a) {
			if err := txn.Set([]byte(key), []byte(a.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *AppointmentStore) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var a appointments.Appointment
		if err := getDoc(txn, appointmentKey(id), &a); err != nil {
			return err
		}
		for _, key := range s.indexKeys(&a) {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return txn.Delete([]byte(appointmentKey(id)))
	})
}

func (s *AppointmentStore) Get(id string) (*appointments.Appointment, error) {
	var a appointments.Appointment
	err := s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, appointmentKey(id), &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AppointmentStore) ListByGym(gymID string) ([]*appointments.Appointment, error) {
	return s.listByIndex("appointment_gym:" + gymID + ":")
}

func (s *AppointmentStore) ListByTrainer(trainerID string) ([]*appointments.Appointment, error) {
	return s.listByIndex("appointment_trainer:" + trainerID + ":")
}

func (s *AppointmentStore) ListByMember(memberID string) ([]*appointments.Appointment, error) {
	return s.listByIndex("appointment_member:" + memberID + ":")
}

func (s *AppointmentStore) listByIndex(prefix string) ([]*appointments.Appointment, error) {
	var ids []string
	err := scanPrefix(s.db, prefix, func(val []byte) error {
		ids = append(ids, string(val))
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*appointments.Appointment, 0, len(ids))
	err = s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var a appointments.Appointment
			if err := getDoc(txn, appointmentKey(id), &a); err != nil {
				return err
			}
			out = append(out, &a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

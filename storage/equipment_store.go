package storage

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gymstack/gymstack/equipment"
	apperrors "github.com/gymstack/gymstack/internal/errors"
)

// Key layout:
//
//	equipment:<id>                 -> Equipment JSON
//	equipment_gym:<gymID>:<id>     -> id
type EquipmentStore struct {
	db *badger.DB
}

var _ equipment.Repo = (*EquipmentStore)(nil)

func NewEquipmentStore(db *badger.DB) *EquipmentStore {
	return &EquipmentStore{db: db}
}

func equipmentKey(id string) string {
	return "equipment:" + id
}

func equipmentGymKey(gymID, id string) string {
	return "equipment_gym:" + gymID + ":" + id
}

func (s *EquipmentStore) Upsert(e *equipment.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing equipment.Equipment
		err := getDoc(txn, equipmentKey(e.ID), &existing)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err == nil && existing.GymID != e.GymID {
			if err := txn.Delete([]byte(equipmentGymKey(existing.GymID, e.ID))); err != nil {
				return err
			}
		}
		if err := putDoc(txn, equipmentKey(e.ID), e); err != nil {
			return err
		}
		return txn.Set([]byte(equipmentGymKey(e.GymID, e.ID)), []byte(e.ID))
	})
}

func (s *EquipmentStore) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var e equipment.Equipment
		if err := getDoc(txn, equipmentKey(id), &e); err != nil {
			return err
		}
		if err := txn.Delete([]byte(equipmentGymKey(e.GymID, e.ID))); err != nil {
			return err
		}
		return txn.Delete([]byte(equipmentKey(id)))
	})
}

func (s *EquipmentStore) Get(id string) (*equipment.Equipment, error) {
	var e equipment.Equipment
	err := s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, equipmentKey(id), &e)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EquipmentStore) ListByGym(gymID string) ([]*equipment.Equipment, error) {
	var ids []string
	err := scanPrefix(s.db, "equipment_gym:"+gymID+":", func(val []byte) error {
		ids = append(ids, string(val))
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*equipment.Equipment, 0, len(ids))
	err = s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var e equipment.Equipment
			if err := getDoc(txn, equipmentKey(id), &e); err != nil {
				return err
			}
			out = append(out, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

package repofake

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gymstack/gymstack/equipment"
	apperrors "github.com/gymstack/gymstack/internal/errors"
)

var _ equipment.Repo = (*FakeEquipmentRepo)(nil)

// FakeEquipmentRepo is an in-memory equipment store for tests.
type FakeEquipmentRepo struct {
	records map[string]*equipment.Equipment
	lock    sync.RWMutex
}

func NewFakeEquipmentRepo() *FakeEquipmentRepo {
	return &FakeEquipmentRepo{
		records: make(map[string]*equipment.Equipment),
	}
}

func (r *FakeEquipmentRepo) Upsert(e *equipment.Equipment) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	copied := *e
	r.records[e.ID] = &copied
	return nil
}

func (r *FakeEquipmentRepo) Delete(id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.records[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *FakeEquipmentRepo) Get(id string) (*equipment.Equipment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	e, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *FakeEquipmentRepo) ListByGym(gymID string) ([]*equipment.Equipment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var out []*equipment.Equipment
	for _, e := range r.records {
		if e.GymID == gymID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

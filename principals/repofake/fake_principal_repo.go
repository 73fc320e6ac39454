package repofake

import (
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/gymstack/gymstack/principals"
)

var _ principals.Store = (*FakePrincipalRepo)(nil)

// FakePrincipalRepo is an in-memory principal store for tests.
type FakePrincipalRepo struct {
	records  map[string]*principals.Principal
	emailIds map[string]string // email to principal id
	lock     sync.RWMutex
}

func NewFakePrincipalRepo() *FakePrincipalRepo {
	return &FakePrincipalRepo{
		records:  make(map[string]*principals.Principal),
		emailIds: make(map[string]string),
	}
}

func (r *FakePrincipalRepo) Upsert(p *principals.Principal) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Email = principals.NormalizeEmail(p.Email)
	if prev, ok := r.records[p.ID]; ok && prev.Email != p.Email {
		delete(r.emailIds, prev.Email)
	}
	copied := *p
	r.records[p.ID] = &copied
	r.emailIds[p.Email] = p.ID
	return nil
}

func (r *FakePrincipalRepo) Delete(id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	p, ok := r.records[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(r.emailIds, p.Email)
	delete(r.records, id)
	return nil
}

func (r *FakePrincipalRepo) GetByID(id string) (*principals.Principal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	p, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *FakePrincipalRepo) GetByEmail(email string) (*principals.Principal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIds[principals.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *r.records[id]
	return &copied, nil
}

func (r *FakePrincipalRepo) List(offset, limit int) ([]*principals.Principal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	all := make([]*principals.Principal, 0, len(r.records))
	for _, p := range r.records {
		copied := *p
		all = append(all, &copied)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *FakePrincipalRepo) SetStatus(id string, status principals.Status) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	p, ok := r.records[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.Status = status
	return nil
}

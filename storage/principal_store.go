package storage

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/gymstack/gymstack/principals"
	"github.com/pkg/errors"
)

// Key layout:
//
//	principal:<role>:<id>           -> Principal JSON
//	principal_email:<role>:<email>  -> id
type PrincipalStore struct {
	db   *badger.DB
	role principals.Role
}

var _ principals.Store = (*PrincipalStore)(nil)

// NewPrincipalStore creates the store for one principal kind. The password
// hash is persisted in a side field because Principal never serializes it.
func NewPrincipalStore(db *badger.DB, role principals.Role) *PrincipalStore {
	return &PrincipalStore{db: db, role: role}
}

// storedPrincipal carries the hash that Principal's JSON encoding strips.
type storedPrincipal struct {
	principals.Principal
	PasswordHash string `json:"password_hash,omitempty"`
}

func (s *PrincipalStore) recordKey(id string) string {
	return "principal:" + string(s.role) + ":" + id
}

func (s *PrincipalStore) emailKey(email string) string {
	return "principal_email:" + string(s.role) + ":" + principals.NormalizeEmail(email)
}

func (s *PrincipalStore) Upsert(p *principals.Principal) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.Email = principals.NormalizeEmail(p.Email)
	p.Role = s.role

	doc := storedPrincipal{Principal: *p, PasswordHash: p.PasswordHash}
	return s.db.Update(func(txn *badger.Txn) error {
		// An email change must retire the old index entry, or the stale
		// address stays resolvable as a login identifier.
		var existing storedPrincipal
		err := getDoc(txn, s.recordKey(p.ID), &existing)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err == nil && existing.Email != p.Email {
			if err := txn.Delete([]byte(s.emailKey(existing.Email))); err != nil {
				return err
			}
		}
		if err := putDoc(txn, s.recordKey(p.ID), doc); err != nil {
			return err
		}
		return txn.Set([]byte(s.emailKey(p.Email)), []byte(p.ID))
	})
}

func (s *PrincipalStore) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var doc storedPrincipal
		if err := getDoc(txn, s.recordKey(id), &doc); err != nil {
			return err
		}
		if err := txn.Delete([]byte(s.emailKey(doc.Email))); err != nil {
			return err
		}
		return txn.Delete([]byte(s.recordKey(id)))
	})
}

func (s *PrincipalStore) GetByID(id string) (*principals.Principal, error) {
	var doc storedPrincipal
	err := s.db.View(func(txn *badger.Txn) error {
		return getDoc(txn, s.recordKey(id), &doc)
	})
	if err != nil {
		return nil, err
	}
	return doc.toPrincipal(), nil
}

func (s *PrincipalStore) GetByEmail(email string) (*principals.Principal, error) {
	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(s.emailKey(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *PrincipalStore) List(offset, limit int) ([]*principals.Principal, error) {
	var all []*principals.Principal
	err := scanPrefix(s.db, "principal:"+string(s.role)+":", func(val []byte) error {
		var doc storedPrincipal
		if err := json.Unmarshal(val, &doc); err != nil {
			return err
		}
		all = append(all, doc.toPrincipal())
		return nil
	})
	if err != nil {
		return nil, err
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

func (s *PrincipalStore) SetStatus(id string, status principals.Status) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var doc storedPrincipal
		if err := getDoc(txn, s.recordKey(id), &doc); err != nil {
			return err
		}
		doc.Status = status
		return putDoc(txn, s.recordKey(id), doc)
	})
}

func (d storedPrincipal) toPrincipal() *principals.Principal {
	p := d.Principal
	p.PasswordHash = d.PasswordHash
	return &p
}

package principals

import (
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/pkg/errors"
)

// emailLookupOrder fixes the order in which FindByEmail consults the stores.
var emailLookupOrder = []Role{RoleGymOwner, RoleTrainer, RoleMember}

// Directory is the single entry point into the per-role principal stores.
// Callers carry a role discriminant alongside the id instead of probing
// collections blindly.
type Directory struct {
	stores map[Role]Store
}

func NewDirectory(gymOwners, trainers, members Store) (*Directory, error) {
	if gymOwners == nil {
		return nil, errors.New("[NewDirectory] gym owner store is required")
	}
	if trainers == nil {
		return nil, errors.New("[NewDirectory] trainer store is required")
	}
	if members == nil {
		return nil, errors.New("[NewDirectory] member store is required")
	}
	return &Directory{
		stores: map[Role]Store{
			RoleGymOwner: gymOwners,
			RoleTrainer:  trainers,
			RoleMember:   members,
		},
	}, nil
}

// ForRole returns the store backing the given role. The super-admin role has
// no store; its identity is compiled in.
func (d *Directory) ForRole(role Role) (Store, error) {
	store, ok := d.stores[role]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrUnknownRole, "no principal store for role %q", role)
	}
	return store, nil
}

func (d *Directory) FindByID(role Role, id string) (*Principal, error) {
	store, err := d.ForRole(role)
	if err != nil {
		return nil, err
	}
	return store.GetByID(id)
}

// FindByEmail searches the stores in a fixed kind order. Login does not know
// the caller's role yet, so this is the one place a cross-kind lookup exists.
func (d *Directory) FindByEmail(email string) (*Principal, error) {
	email = NormalizeEmail(email)
	for _, role := range emailLookupOrder {
		p, err := d.stores[role].GetByEmail(email)
		if err == nil {
			return p, nil
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return nil, apperrors.ErrNotFound
}

func (d *Directory) SetStatus(role Role, id string, status Status) error {
	store, err := d.ForRole(role)
	if err != nil {
		return err
	}
	return store.SetStatus(id, status)
}

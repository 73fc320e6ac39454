package principals

// Store persists one kind of principal (one per role).
type Store interface {
	Upsert(p *Principal) error
	Delete(id string) error
	GetByID(id string) (*Principal, error)
	GetByEmail(email string) (*Principal, error)
	List(offset, limit int) ([]*Principal, error)
	SetStatus(id string, status Status) error
}

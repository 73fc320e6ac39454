package equipment

import "time"

type Status string

const (
	StatusOperational Status = "operational"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// Equipment is a machine or asset owned by a gym.
type Equipment struct {
	ID          string    `json:"id,omitempty"`
	GymID       string    `json:"gym_id,omitempty"` // owning gym
	Name        string    `json:"name,omitempty"`
	Category    string    `json:"category,omitempty"`
	Status      Status    `json:"status,omitempty"`
	PurchasedAt time.Time `json:"purchased_at,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Repo interface {
	Upsert(e *Equipment) error
	Delete(id string) error
	Get(id string) (*Equipment, error)
	ListByGym(gymID string) ([]*Equipment, error)
}

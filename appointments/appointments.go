package appointments

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment is a training session booked between a trainer and a member
// at a gym.
type Appointment struct {
	ID        string    `json:"id,omitempty"`
	GymID     string    `json:"gym_id,omitempty"`
	TrainerID string    `json:"trainer_id,omitempty"`
	MemberID  string    `json:"member_id,omitempty"`
	StartsAt  time.Time `json:"starts_at,omitempty"`
	EndsAt    time.Time `json:"ends_at,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Status    Status    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type Repo interface {
	Upsert(a *Appointment) error
	Delete(id string) error
	Get(id string) (*Appointment, error)
	ListByGym(gymID string) ([]*Appointment, error)
	ListByTrainer(trainerID string) ([]*Appointment, error)
	ListByMember(memberID string) ([]*Appointment, error)
}

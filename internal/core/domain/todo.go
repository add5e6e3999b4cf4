package domain

import "time"

// Todo is owned by exactly one account; ownership never transfers.
// The only state machine on a business entity lives here: regular owners may
// move IsClosed from false to true, admins control the full lifecycle.
type Todo struct {
	ID          int       `json:"id" bson:"_id"`
	OwnerID     int       `json:"owner_id" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	IsClosed    bool      `json:"is_closed" bson:"is_closed"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
	CreatedByID int       `json:"created_by_id" bson:"created_by_id"`
	UpdatedByID int       `json:"updated_by_id" bson:"updated_by_id"`
}

// VisibleTo reports whether a single-item read of this todo is permitted.
// Closed todos are unreachable even for their own owner; admins see everything.
func (t *Todo) VisibleTo(p Principal) bool {
	if p.IsAdmin {
		return true
	}
	return t.OwnerID == p.ID && !t.IsClosed
}

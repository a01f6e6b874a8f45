package db

import "time"

const (
	StatusPending         = "pending"
	StatusVerified        = "verified"
	StatusDeleteRequested = "deleteRequested"
	StatusRejected        = "rejected"
)

type NodeStatusDB struct {
	NodeID      string
	Status      string
	ModeratorID *string
	UpdatedAt   time.Time
}

// StatusChange moves a node from From to To. The store rejects it with a
// conflict when the stored status is no longer From.
type StatusChange struct {
	NodeID      string
	From        string
	To          string
	ModeratorID *string
	At          time.Time
}

package db

import "time"

type ChainDB struct {
	ID        string
	Kind      string
	Language  string
	CurrentID *string
	LastID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package revision

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/geocontent/backend/lib/diff"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/models/db"
	"github.com/google/uuid"
)

// Node is one immutable revision. Its successor is never stored; see
// Repository.Next.
type Node[V any] struct {
	ID         string    `json:"id"`
	ChainID    string    `json:"chainId"`
	Value      V         `json:"value"`
	AuthorID   string    `json:"authorId"`
	CreatedAt  time.Time `json:"createdAt"`
	PreviousID *string   `json:"previousId,omitempty"`
}

type Chain struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Language  string    `json:"language"`
	CurrentID *string   `json:"currentId,omitempty"`
	LastID    *string   `json:"lastId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Strategy carries everything the repository needs to know about a value
// type: the chain kind it is stored under, how to validate it and how to
// project it for diffing.
type Strategy[V any] struct {
	Kind     string
	Validate func(V) error
	Fields   func(V) diff.Fields
}

func (s Strategy[V]) validate(value V) error {
	if s.Validate == nil {
		return nil
	}
	err := s.Validate(value)
	if err == nil {
		return nil
	}
	var validationError *exception.ValidationError
	if errors.As(err, &validationError) {
		return validationError
	}
	return exception.NewValidationError("value", err.Error())
}

func (s Strategy[V]) fields(value V) diff.Fields {
	if s.Fields == nil {
		return diff.Fields{}
	}
	return s.Fields(value)
}

// NewNode builds an unpersisted node after validating value and author.
func NewNode[V any](strategy Strategy[V], value V, authorID string, previous *string, now time.Time) (Node[V], error) {
	if strings.TrimSpace(authorID) == "" {
		return Node[V]{}, exception.NewValidationError("authorId", "author id must not be empty")
	}
	if err := strategy.validate(value); err != nil {
		return Node[V]{}, err
	}
	return Node[V]{
		ID:         uuid.NewString(),
		Value:      value,
		AuthorID:   authorID,
		CreatedAt:  now.UTC().Truncate(time.Microsecond),
		PreviousID: previous,
	}, nil
}

func encodeNode[V any](node Node[V]) (db.NodeDB, error) {
	value, err := json.Marshal(node.Value)
	if err != nil {
		return db.NodeDB{}, exception.NewValidationError("value", "value cannot be serialized: "+err.Error())
	}
	return db.NodeDB{
		ID:         node.ID,
		ChainID:    node.ChainID,
		PreviousID: node.PreviousID,
		Value:      string(value),
		AuthorID:   node.AuthorID,
		CreatedAt:  node.CreatedAt,
	}, nil
}

// DecodeNode turns a stored row back into a typed revision.
func DecodeNode[V any](row db.NodeDB) (Node[V], error) {
	var value V
	if err := json.Unmarshal([]byte(row.Value), &value); err != nil {
		return Node[V]{}, exception.NewDatabaseError("stored value of node "+row.ID+" cannot be decoded", err)
	}
	return Node[V]{
		ID:         row.ID,
		ChainID:    row.ChainID,
		Value:      value,
		AuthorID:   row.AuthorID,
		CreatedAt:  row.CreatedAt,
		PreviousID: row.PreviousID,
	}, nil
}

// ChainFromDB maps a stored chain row.
func ChainFromDB(row db.ChainDB) Chain {
	return Chain{
		ID:        row.ID,
		Kind:      row.Kind,
		Language:  row.Language,
		CurrentID: row.CurrentID,
		LastID:    row.LastID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geocontent/backend/lib/db"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/metrics"
	modelDB "github.com/geocontent/backend/lib/models/db"
	"github.com/geocontent/backend/lib/revision"
	"go.uber.org/zap"
)

type Config struct {
	TrustedAuthors []string
	DeletePolicy   DeletePolicy
}

// Moderator layers the moderation status overlay over one kind's
// repository.
type Moderator[V any] struct {
	repo    *revision.Repository[V]
	store   db.DataStore
	logger  *zap.SugaredLogger
	trusted map[string]struct{}
	policy  DeletePolicy
	now     func() time.Time
}

type Submission[V any] struct {
	Node   revision.Node[V] `json:"node"`
	Status Status           `json:"status"`
}

type Entry[V any] struct {
	Chain   revision.Chain   `json:"chain"`
	Current revision.Node[V] `json:"current"`
}

type PendingRevision[V any] struct {
	Node     revision.Node[V] `json:"node"`
	Language string           `json:"language"`
}

// Removal describes what ConfirmDeletion did to the chain.
type Removal struct {
	ChainID      string  `json:"chainId"`
	ChainDeleted bool    `json:"chainDeleted"`
	CurrentID    *string `json:"currentId,omitempty"`
}

func NewModerator[V any](repo *revision.Repository[V], store db.DataStore, config Config, logger *zap.SugaredLogger) *Moderator[V] {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	trusted := make(map[string]struct{}, len(config.TrustedAuthors))
	for _, author := range config.TrustedAuthors {
		trusted[author] = struct{}{}
	}
	policy := config.DeletePolicy
	if policy == "" {
		policy = PolicyRevert
	}
	return &Moderator[V]{
		repo:    repo,
		store:   store,
		logger:  logger,
		trusted: trusted,
		policy:  policy,
		now:     time.Now,
	}
}

func (m *Moderator[V]) Repository() *revision.Repository[V] {
	return m.repo
}

func (m *Moderator[V]) isTrusted(authorID string) bool {
	_, ok := m.trusted[authorID]
	return ok
}

// Create opens a chain in language and submits value as its first
// revision. Nothing is stored when value is invalid.
func (m *Moderator[V]) Create(ctx context.Context, language string, value V, authorID string) (revision.Chain, Submission[V], error) {
	if err := m.repo.Validate(value, authorID); err != nil {
		return revision.Chain{}, Submission[V]{}, err
	}
	chain, err := m.repo.CreateChain(ctx, language)
	if err != nil {
		return revision.Chain{}, Submission[V]{}, err
	}
	submission, err := m.Submit(ctx, chain.ID, value, authorID)
	if err != nil {
		if removeErr := m.repo.Delete(context.WithoutCancel(ctx), chain.ID); removeErr != nil {
			m.logger.Warnw("Could not remove chain after failed submission", "chainId", chain.ID, "error", removeErr)
		}
		return revision.Chain{}, Submission[V]{}, err
	}
	chain, err = m.repo.Chain(ctx, chain.ID)
	if err != nil {
		return revision.Chain{}, Submission[V]{}, err
	}
	return chain, submission, nil
}

// Submit appends value as a pending revision. Revisions by trusted authors
// are verified and promoted right away.
func (m *Moderator[V]) Submit(ctx context.Context, chainID string, value V, authorID string) (Submission[V], error) {
	node, err := m.repo.Append(ctx, chainID, value, authorID)
	if err != nil {
		return Submission[V]{}, err
	}
	if !m.isTrusted(authorID) {
		return Submission[V]{Node: node, Status: Pending}, nil
	}
	if err := m.Approve(ctx, node.ID, authorID); err != nil {
		return Submission[V]{}, err
	}
	m.logger.Debugw("Auto-verified revision of trusted author", "chainId", chainID, "nodeId", node.ID, "authorId", authorID)
	return Submission[V]{Node: node, Status: Verified}, nil
}

// Approve verifies a pending revision. It becomes current unless the chain
// already serves a newer revision.
//
// The newer-than-current decision and the pointer move are bound by a
// compare-and-set on the current pointer; a concurrent move makes the
// approval re-read the chain and decide again.
func (m *Moderator[V]) Approve(ctx context.Context, nodeID string, moderatorID string) error {
	var change modelDB.StatusChange
	err := m.repo.RetryOnConflict(ctx, func() error {
		node, transition, err := m.transition(ctx, nodeID, moderatorID, Verified)
		if err != nil {
			return err
		}
		change = transition
		current, err := m.repo.Current(ctx, node.ChainID)
		if err != nil {
			return err
		}
		if current != nil && !node.CreatedAt.After(current.CreatedAt) {
			return m.store.UpdateNodeStatus(ctx, change)
		}
		var expected *string
		if current != nil {
			expected = &current.ID
		}
		return m.repo.Promote(ctx, node.ChainID, node.ID,
			revision.WithStatusChange(change),
			revision.WithExpectedCurrent(expected),
		)
	})
	if err != nil {
		return err
	}
	m.record(change)
	return nil
}

func (m *Moderator[V]) Reject(ctx context.Context, nodeID string, moderatorID string) error {
	return m.update(ctx, nodeID, moderatorID, Rejected, Pending)
}

func (m *Moderator[V]) RequestDeletion(ctx context.Context, nodeID string, requesterID string) error {
	return m.update(ctx, nodeID, requesterID, DeleteRequested, Verified)
}

func (m *Moderator[V]) DeclineDeletion(ctx context.Context, nodeID string, moderatorID string) error {
	return m.update(ctx, nodeID, moderatorID, Verified, DeleteRequested)
}

// ConfirmDeletion removes a revision whose deletion was requested,
// following the configured DeletePolicy.
func (m *Moderator[V]) ConfirmDeletion(ctx context.Context, nodeID string, moderatorID string) (Removal, error) {
	node, change, err := m.transition(ctx, nodeID, moderatorID, Rejected)
	if err != nil {
		return Removal{}, err
	}
	if Status(change.From) != DeleteRequested {
		return Removal{}, exception.NewValidationError("status", fmt.Sprintf("revision %s has no pending deletion request", nodeID))
	}
	chain, err := m.repo.Chain(ctx, node.ChainID)
	if err != nil {
		return Removal{}, err
	}

	if m.policy == PolicyCascade {
		return m.removeChain(ctx, chain.ID, nodeID)
	}

	if chain.CurrentID == nil || *chain.CurrentID != nodeID {
		if err := m.store.UpdateNodeStatus(ctx, change); err != nil {
			return Removal{}, err
		}
		m.record(change)
		return Removal{ChainID: chain.ID, CurrentID: chain.CurrentID}, nil
	}

	fallback, err := m.previousVerified(ctx, nodeID)
	if err != nil {
		return Removal{}, err
	}
	if fallback == nil {
		return m.removeChain(ctx, chain.ID, nodeID)
	}
	if err := m.repo.Rewind(ctx, chain.ID, *fallback,
		revision.WithStatusChange(change),
		revision.WithExpectedCurrent(chain.CurrentID),
	); err != nil {
		return Removal{}, err
	}
	m.record(change)
	m.logger.Infow("Reverted chain to earlier verified revision", "chainId", chain.ID, "removedNodeId", nodeID, "currentId", *fallback)
	return Removal{ChainID: chain.ID, CurrentID: fallback}, nil
}

func (m *Moderator[V]) removeChain(ctx context.Context, chainID string, nodeID string) (Removal, error) {
	if err := m.repo.Delete(ctx, chainID); err != nil {
		return Removal{}, err
	}
	m.logger.Infow("Deleted chain on confirmed deletion", "chainId", chainID, "nodeId", nodeID, "policy", m.policy)
	return Removal{ChainID: chainID, ChainDeleted: true}, nil
}

// previousVerified finds the nearest revision older than nodeID that is
// verified.
func (m *Moderator[V]) previousVerified(ctx context.Context, nodeID string) (*string, error) {
	first := true
	for node, err := range m.repo.NodeHistory(ctx, nodeID) {
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			continue
		}
		status, err := m.store.GetNodeStatus(ctx, node.ID)
		if err != nil {
			return nil, err
		}
		if Status(status.Status) == Verified {
			id := node.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (m *Moderator[V]) update(ctx context.Context, nodeID string, actorID string, to Status, from Status) error {
	_, change, err := m.transition(ctx, nodeID, actorID, to)
	if err != nil {
		return err
	}
	if Status(change.From) != from {
		return exception.NewValidationError("status", fmt.Sprintf("revision %s is %s, expected %s", nodeID, change.From, from))
	}
	if err := m.store.UpdateNodeStatus(ctx, change); err != nil {
		return err
	}
	m.record(change)
	return nil
}

func (m *Moderator[V]) transition(ctx context.Context, nodeID string, actorID string, to Status) (revision.Node[V], modelDB.StatusChange, error) {
	if strings.TrimSpace(actorID) == "" {
		return revision.Node[V]{}, modelDB.StatusChange{}, exception.NewValidationError("moderatorId", "acting user must not be empty")
	}
	node, err := m.repo.Node(ctx, nodeID)
	if err != nil {
		return revision.Node[V]{}, modelDB.StatusChange{}, err
	}
	stored, err := m.store.GetNodeStatus(ctx, nodeID)
	if err != nil {
		return revision.Node[V]{}, modelDB.StatusChange{}, err
	}
	from := Status(stored.Status)
	if !CanTransition(from, to) {
		return revision.Node[V]{}, modelDB.StatusChange{}, exception.NewValidationError("status",
			fmt.Sprintf("revision %s cannot move from %s to %s", nodeID, from, to))
	}
	actor := actorID
	return node, modelDB.StatusChange{
		NodeID:      nodeID,
		From:        string(from),
		To:          string(to),
		ModeratorID: &actor,
		At:          m.now().UTC().Truncate(time.Microsecond),
	}, nil
}

func (m *Moderator[V]) record(change modelDB.StatusChange) {
	metrics.ModerationTransitions.WithLabelValues(m.repo.Kind(), change.To).Inc()
	m.logger.Infow("Moderation status changed",
		"kind", m.repo.Kind(),
		"nodeId", change.NodeID,
		"from", change.From,
		"to", change.To,
		"moderatorId", *change.ModeratorID,
	)
}

func (m *Moderator[V]) Status(ctx context.Context, nodeID string) (Status, error) {
	if _, err := m.repo.Node(ctx, nodeID); err != nil {
		return "", err
	}
	stored, err := m.store.GetNodeStatus(ctx, nodeID)
	if err != nil {
		return "", err
	}
	return Status(stored.Status), nil
}

// ListVisible returns chains whose current revision is verified and whose
// language is active. An empty language lists all active languages.
func (m *Moderator[V]) ListVisible(ctx context.Context, language string) ([]Entry[V], error) {
	chains, err := m.store.QueryVisibleChains(ctx, m.repo.Kind(), language)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry[V], 0, len(chains))
	for _, row := range chains {
		current, err := m.repo.Current(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			continue
		}
		entries = append(entries, Entry[V]{Chain: revision.ChainFromDB(row), Current: *current})
	}
	return entries, nil
}

// ListPending returns the moderation queue, oldest first.
func (m *Moderator[V]) ListPending(ctx context.Context) ([]PendingRevision[V], error) {
	rows, err := m.store.QueryPendingNodes(ctx, m.repo.Kind())
	if err != nil {
		return nil, err
	}
	pending := make([]PendingRevision[V], 0, len(rows))
	for _, row := range rows {
		node, err := revision.DecodeNode[V](row.NodeDB)
		if err != nil {
			return nil, err
		}
		pending = append(pending, PendingRevision[V]{Node: node, Language: row.Language})
	}
	return pending, nil
}

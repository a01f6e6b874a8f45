package revision

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/geocontent/backend/lib/db"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/metrics"
	modelDB "github.com/geocontent/backend/lib/models/db"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultAppendAttempts = 3

type options struct {
	appendAttempts int
	now            func() time.Time
	newBackOff     func() backoff.BackOff
}

type Option func(*options)

// WithAppendAttempts bounds how often an append or a current pointer move
// is tried before a lost race is reported as a ConflictError.
func WithAppendAttempts(attempts int) Option {
	return func(o *options) {
		if attempts > 0 {
			o.appendAttempts = attempts
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(o *options) {
		o.newBackOff = newBackOff
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 2 * time.Second
	return b
}

// RetryOnConflict runs operation again with backoff while it fails with a
// ConflictError. Any other error ends the loop. A final ConflictError
// carries the number of attempts made.
func (r *Repository[V]) RetryOnConflict(ctx context.Context, operation func() error) error {
	attempts := 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(r.options.newBackOff(), uint64(r.options.appendAttempts-1)),
		ctx,
	)
	err := backoff.Retry(func() error {
		attempts++
		err := operation()
		var conflict *exception.ConflictError
		if err == nil || errors.As(err, &conflict) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)

	var conflict *exception.ConflictError
	if errors.As(err, &conflict) {
		conflict.Attempts = attempts
	}
	return err
}

// Repository manages the version chains of one content kind.
type Repository[V any] struct {
	store    db.DataStore
	strategy Strategy[V]
	logger   *zap.SugaredLogger
	options  options
}

func NewRepository[V any](store db.DataStore, strategy Strategy[V], logger *zap.SugaredLogger, opts ...Option) *Repository[V] {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	o := options{
		appendAttempts: DefaultAppendAttempts,
		now:            time.Now,
		newBackOff:     defaultBackOff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[V]{
		store:    store,
		strategy: strategy,
		logger:   logger,
		options:  o,
	}
}

func (r *Repository[V]) Kind() string {
	return r.strategy.Kind
}

// Validate runs the kind's validation strategy without touching the store.
func (r *Repository[V]) Validate(value V, authorID string) error {
	_, err := NewNode(r.strategy, value, authorID, nil, r.options.now())
	return err
}

func (r *Repository[V]) CreateChain(ctx context.Context, language string) (Chain, error) {
	if language == "" {
		return Chain{}, exception.NewValidationError("language", "language must not be empty")
	}
	now := r.options.now().UTC().Truncate(time.Microsecond)
	row := modelDB.ChainDB{
		ID:        uuid.NewString(),
		Kind:      r.strategy.Kind,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.store.CreateChain(ctx, row); err != nil {
		return Chain{}, err
	}
	r.logger.Debugw("Created chain", "kind", row.Kind, "chainId", row.ID, "language", language)
	return ChainFromDB(row), nil
}

// Chain loads a chain of this repository's kind.
func (r *Repository[V]) Chain(ctx context.Context, chainID string) (Chain, error) {
	row, err := r.store.GetChain(ctx, chainID)
	if err != nil {
		return Chain{}, err
	}
	if row.Kind != r.strategy.Kind {
		return Chain{}, exception.NewNotFoundError(db.ChainResource, chainID)
	}
	return ChainFromDB(*row), nil
}

// Node loads a revision belonging to a chain of this repository's kind.
func (r *Repository[V]) Node(ctx context.Context, nodeID string) (Node[V], error) {
	row, err := r.store.GetNode(ctx, nodeID)
	if err != nil {
		return Node[V]{}, err
	}
	if _, err := r.Chain(ctx, row.ChainID); err != nil {
		var notFound *exception.NotFoundError
		if errors.As(err, &notFound) {
			return Node[V]{}, exception.NewNotFoundError(db.NodeResource, nodeID)
		}
		return Node[V]{}, err
	}
	return DecodeNode[V](*row)
}

// Next returns the revision that superseded nodeID, or nil if nodeID is the
// newest revision of its chain.
func (r *Repository[V]) Next(ctx context.Context, nodeID string) (*Node[V], error) {
	if _, err := r.Node(ctx, nodeID); err != nil {
		return nil, err
	}
	row, err := r.store.GetNodeByPrevious(ctx, nodeID)
	if err != nil || row == nil {
		return nil, err
	}
	node, err := DecodeNode[V](*row)
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// Current returns the revision served to readers, or nil when nothing has
// been promoted yet.
func (r *Repository[V]) Current(ctx context.Context, chainID string) (*Node[V], error) {
	chain, err := r.Chain(ctx, chainID)
	if err != nil {
		return nil, err
	}
	if chain.CurrentID == nil {
		return nil, nil
	}
	row, err := r.store.GetNode(ctx, *chain.CurrentID)
	if err != nil {
		return nil, err
	}
	node, err := DecodeNode[V](*row)
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// Append adds value as the newest revision of the chain. The current
// pointer is left alone. Lost races against concurrent appends are retried
// with the chain re-read; once the attempts are exhausted the
// ConflictError is returned.
func (r *Repository[V]) Append(ctx context.Context, chainID string, value V, authorID string) (Node[V], error) {
	node, err := NewNode(r.strategy, value, authorID, nil, r.options.now())
	if err != nil {
		return Node[V]{}, err
	}
	if _, err := r.Chain(ctx, chainID); err != nil {
		return Node[V]{}, err
	}
	node.ChainID = chainID

	attempts := 0
	err = r.RetryOnConflict(ctx, func() error {
		attempts++
		chain, err := r.store.GetChain(ctx, chainID)
		if err != nil {
			return err
		}
		node.PreviousID = chain.LastID
		node.CreatedAt = r.options.now().UTC().Truncate(time.Microsecond)
		if chain.LastID != nil {
			last, err := r.store.GetNode(ctx, *chain.LastID)
			if err != nil {
				return err
			}
			if !node.CreatedAt.After(last.CreatedAt) {
				node.CreatedAt = last.CreatedAt.Add(time.Microsecond)
			}
		}
		row, err := encodeNode(node)
		if err != nil {
			return err
		}
		status := modelDB.NodeStatusDB{
			NodeID:    node.ID,
			Status:    modelDB.StatusPending,
			UpdatedAt: node.CreatedAt,
		}
		err = r.store.AppendNode(ctx, row, chain.LastID, status)
		var conflict *exception.ConflictError
		if errors.As(err, &conflict) {
			metrics.AppendConflicts.WithLabelValues(r.strategy.Kind).Inc()
			r.logger.Debugw("Append lost race for chain tail", "chainId", chainID, "attempt", attempts)
		}
		return err
	})
	if err != nil {
		var conflict *exception.ConflictError
		if errors.As(err, &conflict) {
			r.logger.Warnw("Append gave up after conflicts", "chainId", chainID, "attempts", conflict.Attempts)
		}
		return Node[V]{}, err
	}

	metrics.Appends.WithLabelValues(r.strategy.Kind).Inc()
	r.logger.Debugw("Appended revision", "kind", r.strategy.Kind, "chainId", chainID, "nodeId", node.ID)
	return node, nil
}

// Delete tears down the chain with all of its revisions.
func (r *Repository[V]) Delete(ctx context.Context, chainID string) error {
	if _, err := r.Chain(ctx, chainID); err != nil {
		return err
	}
	if err := r.store.RemoveChain(ctx, chainID); err != nil {
		return err
	}
	r.logger.Infow("Deleted chain", "kind", r.strategy.Kind, "chainId", chainID)
	return nil
}

package revision

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/metrics"
)

// History yields the chain's revisions from last back to the first, newest
// first. The walk costs one store lookup per step and stops at the first
// error.
func (r *Repository[V]) History(ctx context.Context, chainID string) iter.Seq2[Node[V], error] {
	return func(yield func(Node[V], error) bool) {
		chain, err := r.Chain(ctx, chainID)
		if err != nil {
			yield(Node[V]{}, err)
			return
		}
		if chain.LastID == nil {
			return
		}
		for node, err := range r.walk(ctx, chain.ID, *chain.LastID) {
			if !yield(node, err) || err != nil {
				return
			}
		}
	}
}

// NodeHistory yields nodeID followed by every revision it superseded.
func (r *Repository[V]) NodeHistory(ctx context.Context, nodeID string) iter.Seq2[Node[V], error] {
	return func(yield func(Node[V], error) bool) {
		start, err := r.Node(ctx, nodeID)
		if err != nil {
			yield(Node[V]{}, err)
			return
		}
		for node, err := range r.walk(ctx, start.ChainID, start.ID) {
			if !yield(node, err) || err != nil {
				return
			}
		}
	}
}

func (r *Repository[V]) walk(ctx context.Context, chainID string, startID string) iter.Seq2[Node[V], error] {
	return func(yield func(Node[V], error) bool) {
		visited := make(map[string]struct{})
		var newerAt time.Time
		id := startID
		for {
			if _, seen := visited[id]; seen {
				yield(Node[V]{}, r.violation(chainID, id, "cycle in previous links"))
				return
			}
			visited[id] = struct{}{}

			row, err := r.store.GetNode(ctx, id)
			if err != nil {
				var notFound *exception.NotFoundError
				if len(visited) > 1 && errors.As(err, &notFound) {
					err = r.violation(chainID, id, "previous link points to a missing node")
				}
				yield(Node[V]{}, err)
				return
			}
			if row.ChainID != chainID {
				yield(Node[V]{}, r.violation(chainID, id, "previous link leaves the chain"))
				return
			}
			if !newerAt.IsZero() && !row.CreatedAt.Before(newerAt) {
				yield(Node[V]{}, r.violation(chainID, id, "history is not in reverse chronological order"))
				return
			}

			node, err := DecodeNode[V](*row)
			if err != nil {
				yield(Node[V]{}, err)
				return
			}
			if !yield(node, nil) {
				return
			}
			if row.PreviousID == nil {
				return
			}
			newerAt = row.CreatedAt
			id = *row.PreviousID
		}
	}
}

// reachable reports whether nodeID lies on the history walk starting at
// fromID.
func (r *Repository[V]) reachable(ctx context.Context, chainID string, fromID *string, nodeID string) (bool, error) {
	if fromID == nil {
		return false, nil
	}
	for node, err := range r.walk(ctx, chainID, *fromID) {
		if err != nil {
			return false, err
		}
		if node.ID == nodeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository[V]) violation(chainID string, nodeID string, reason string) error {
	metrics.InvariantViolations.WithLabelValues(r.strategy.Kind).Inc()
	r.logger.Errorw("Chain invariant violated",
		"kind", r.strategy.Kind,
		"chainId", chainID,
		"nodeId", nodeID,
		"reason", reason,
	)
	return exception.NewInvariantViolation(chainID, nodeID, reason)
}

package revision

import (
	"context"

	"github.com/geocontent/backend/lib/diff"
)

// Diff compares two revisions of this kind field by field. Diff(a, a) has
// no insertions or deletions.
func (r *Repository[V]) Diff(ctx context.Context, fromID string, toID string) (diff.Result, error) {
	from, err := r.Node(ctx, fromID)
	if err != nil {
		return diff.Result{}, err
	}
	to, err := r.Node(ctx, toID)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compare(r.strategy.fields(from.Value), r.strategy.fields(to.Value)), nil
}

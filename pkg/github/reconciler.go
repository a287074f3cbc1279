package github

import (
	"context"
	"fmt"

	"labelord/pkg/labels"
	"labelord/pkg/logging"
)

// reconciler implements the Reconciler interface
type reconciler struct {
	store LabelStore
}

// NewReconciler creates a new reconciler instance
func NewReconciler(store LabelStore) Reconciler {
	return &reconciler{
		store: store,
	}
}

// Plan fetches the current labels of repo and decides the operations
func (r *reconciler) Plan(ctx context.Context, repo string, desired labels.LabelSet, mode labels.Mode) ([]labels.Operation, error) {
	var current labels.LabelSet
	err := guard(func() (err error) {
		current, err = r.store.ListLabels(ctx, repo)
		return err
	})
	if err != nil {
		return nil, &FetchError{Repository: repo, Err: err}
	}

	logging.FromContext(ctx).Debug().
		Int("current", len(current)).
		Int("desired", len(desired)).
		Msg("fetched current labels")

	return labels.Decide(desired, current, mode), nil
}

// Reconcile executes the planned operations one at a time. A failed
// operation is recorded and the next one still runs.
func (r *reconciler) Reconcile(ctx context.Context, repo string, desired labels.LabelSet, mode labels.Mode) []labels.Result {
	var results []labels.Result
	r.reconcile(ctx, repo, desired, mode, func(result labels.Result) {
		results = append(results, result)
	})
	return results
}

// reconcile hands every result to emit as soon as its operation finishes
func (r *reconciler) reconcile(ctx context.Context, repo string, desired labels.LabelSet, mode labels.Mode, emit func(labels.Result)) {
	ctx = logging.WithRepository(ctx, repo)
	log := logging.FromContext(ctx)

	ops, err := r.Plan(ctx, repo, desired, mode)
	if err != nil {
		log.Warn().Err(err).Msg("skipping repository")
		emit(labels.Result{
			Repository: repo,
			Operation:  labels.Operation{Kind: labels.OperationFetch},
			Err:        err,
		})
		return
	}

	if len(ops) == 0 {
		log.Info().Msg("labels already up to date")
		return
	}

	for _, op := range ops {
		result := labels.Result{Repository: repo, Operation: op}
		if err := r.apply(ctx, repo, op); err != nil {
			result.Err = &OperationError{Repository: repo, Operation: op, Err: err}
		}

		event := log.Debug()
		if !result.Succeeded() {
			event = log.Warn().Err(result.Err)
		}
		event.Str("operation", string(op.Kind)).
			Str("label", op.Name).
			Str("color", op.Color).
			Str("outcome", string(result.Outcome())).
			Msg("label operation finished")

		emit(result)
	}
}

func (r *reconciler) apply(ctx context.Context, repo string, op labels.Operation) error {
	return guard(func() error {
		switch op.Kind {
		case labels.OperationCreate:
			return r.store.CreateLabel(ctx, repo, op.Name, op.Color)
		case labels.OperationUpdate:
			return r.store.UpdateLabel(ctx, repo, op.Name, op.Color)
		case labels.OperationDelete:
			return r.store.DeleteLabel(ctx, repo, op.Name)
		default:
			return fmt.Errorf("unsupported label operation: %s", op.Kind)
		}
	})
}

// guard runs fn, turning a panic into a *PanicError
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}

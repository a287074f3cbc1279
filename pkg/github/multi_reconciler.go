package github

import (
	"context"

	"golang.org/x/sync/errgroup"

	"labelord/pkg/labels"
	"labelord/pkg/logging"
)

// DefaultConcurrency processes repositories one at a time
const DefaultConcurrency = 1

// MultiOption configures a MultiReconciler
type MultiOption func(*multiReconciler)

// WithConcurrency bounds the number of repositories processed at once.
// Values below one fall back to DefaultConcurrency.
func WithConcurrency(n int) MultiOption {
	return func(mr *multiReconciler) {
		if n < 1 {
			n = DefaultConcurrency
		}
		mr.concurrency = n
	}
}

// multiReconciler implements the MultiReconciler interface
type multiReconciler struct {
	single      *reconciler
	concurrency int
}

// NewMultiReconciler creates a new multi-repository reconciler instance
func NewMultiReconciler(store LabelStore, opts ...MultiOption) MultiReconciler {
	mr := &multiReconciler{
		single:      &reconciler{store: store},
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(mr)
	}
	return mr
}

// PlanAll plans every repository without executing anything
func (mr *multiReconciler) PlanAll(ctx context.Context, repos []string, desired labels.LabelSet, mode labels.Mode) []RepositoryPlan {
	plans := make([]RepositoryPlan, len(repos))

	mr.forEach(ctx, repos, func(ctx context.Context, i int, repo string) {
		plans[i] = RepositoryPlan{Repository: repo}
		defer func() {
			if r := recover(); r != nil {
				plans[i].Err = &FetchError{Repository: repo, Err: &PanicError{Value: r}}
			}
		}()

		ops, err := mr.single.Plan(logging.WithRepository(ctx, repo), repo, desired, mode)
		plans[i].Operations = ops
		plans[i].Err = err
	})

	return plans
}

// ReconcileAll reconciles every repository, keeping results in input order.
// Store panics are already recorded against the operation that raised them;
// any other panic keeps the results recorded so far and adds one failure.
func (mr *multiReconciler) ReconcileAll(ctx context.Context, repos []string, desired labels.LabelSet, mode labels.Mode) []labels.Result {
	slots := make([][]labels.Result, len(repos))

	mr.forEach(ctx, repos, func(ctx context.Context, i int, repo string) {
		defer func() {
			if r := recover(); r != nil {
				logging.FromContext(ctx).Error().
					Str("repository", repo).
					Interface("panic", r).
					Msg("repository reconciliation panicked")

				result := labels.Result{Repository: repo, Err: &PanicError{Value: r}}
				if len(slots[i]) == 0 {
					// nothing ran, so the repository was skipped
					result.Operation = labels.Operation{Kind: labels.OperationFetch}
					result.Err = &FetchError{Repository: repo, Err: result.Err}
				}
				slots[i] = append(slots[i], result)
			}
		}()

		mr.single.reconcile(ctx, repo, desired, mode, func(result labels.Result) {
			slots[i] = append(slots[i], result)
		})
	})

	var results []labels.Result
	for _, slot := range slots {
		results = append(results, slot...)
	}
	return results
}

// forEach runs fn for every repository with at most mr.concurrency
// invocations in flight. fn owns slot i and never returns an error, so a
// failing repository cannot cancel the others.
func (mr *multiReconciler) forEach(ctx context.Context, repos []string, fn func(ctx context.Context, i int, repo string)) {
	g := new(errgroup.Group)
	g.SetLimit(mr.concurrency)

	log := logging.FromContext(ctx)
	for i, repo := range repos {
		log.Debug().Str("repository", repo).Int("index", i).Msg("processing repository")
		g.Go(func() error {
			fn(ctx, i, repo)
			return nil
		})
	}

	_ = g.Wait()
}

package github

import (
	"context"

	"labelord/pkg/labels"
)

// LabelStore defines the label operations consumed by the reconciler.
// Repositories are addressed as owner/name.
type LabelStore interface {
	ListLabels(ctx context.Context, repo string) (labels.LabelSet, error)
	CreateLabel(ctx context.Context, repo, name, color string) error
	UpdateLabel(ctx context.Context, repo, name, color string) error
	DeleteLabel(ctx context.Context, repo, name string) error

	// ListRepositories returns every repository the token can access
	ListRepositories(ctx context.Context) ([]Repository, error)
}

// Reconciler converges the labels of a single repository
type Reconciler interface {
	// Plan fetches the current labels and decides the operations without
	// executing them
	Plan(ctx context.Context, repo string, desired labels.LabelSet, mode labels.Mode) ([]labels.Operation, error)

	// Reconcile fetches, decides and executes, returning one result per
	// executed operation or a single fetch result when listing failed
	Reconcile(ctx context.Context, repo string, desired labels.LabelSet, mode labels.Mode) []labels.Result
}

// MultiReconciler manages multiple repositories
type MultiReconciler interface {
	// PlanAll plans every repository, in input order
	PlanAll(ctx context.Context, repos []string, desired labels.LabelSet, mode labels.Mode) []RepositoryPlan

	// ReconcileAll reconciles every repository and concatenates the results
	// in input order. A failing repository never stops the others.
	ReconcileAll(ctx context.Context, repos []string, desired labels.LabelSet, mode labels.Mode) []labels.Result
}

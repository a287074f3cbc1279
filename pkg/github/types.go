package github

import "labelord/pkg/labels"

// Repository is an accessible repository as reported by the GitHub API
type Repository struct {
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
	Archived bool   `json:"archived"`
}

// RepositoryPlan is the dry-run view of one repository: the operations a
// reconciliation would execute, or the error that prevented deciding them.
type RepositoryPlan struct {
	Repository string
	Operations []labels.Operation
	Err        error
}

// Package github synchronizes repository labels through the GitHub REST API.
//
// The package includes:
//   - LabelStore, implemented by Client on top of go-github
//   - Reconciler, which fetches, decides and executes for one repository
//   - MultiReconciler, which runs the Reconciler across many repositories with
//     failure isolation and ordered results
//   - Error, the classification of API failures into ErrorType values
package github

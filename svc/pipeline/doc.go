// Package pipeline runs the fetch, validate, persist cycle.
//
// A Runner fetches every enabled source concurrently, validates the results
// one by one with a fresh validation.Validator, upserts tabular data that
// passed, archives data that failed, writes one run log per API and publishes
// a snapshot for the reporting API. Collaborators are interfaces so runs can
// be exercised without a network or a database.
package pipeline

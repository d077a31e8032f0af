// Package schedule computes run times for periodic work and drives a
// blocking loop over them. Used by the serve command to repeat pipeline runs.
package schedule

// Package quarantine keeps payloads that failed validation, next to the
// report that explains why, so operators can inspect or replay them.
package quarantine

// Package archive stores opaque blobs on the local filesystem or in S3.
//
// Storage is intentionally small: Put, Get and List by key. LocalStorage
// writes atomically through a temp file and rejects keys containing "..".
// S3Storage uses aws-sdk-go-v2 and maps SDK errors (via smithy.APIError) onto
// ErrNotFound, ErrAccessDenied, ErrBucketNotFound and friends, so callers can
// use errors.Is regardless of the backend.
package archive

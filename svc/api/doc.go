// Package api exposes on-demand validation and the pipeline's reports over HTTP.
//
// Every /v1 response is a JSON envelope with data, meta and error fields.
// Validation requests build their own Validator, so handlers share no state.
package api

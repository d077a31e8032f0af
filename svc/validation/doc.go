// Package validation maps named data domains to expected-type schemas and
// runs the pkg/quality checks for them.
//
// The registry is fixed: cryptocurrencies and posts are tabular domains,
// weather is a structured (single record) domain. A Validator keeps the
// latest result per domain for Summary. Validation entry points never return
// errors or panic; every problem is reported as a failed result.
package validation

// Package aggregates defines the domain-facing contract of the page
// aggregate: the operations that must mutate a page row and its version
// ledger atomically, and the error codes they surface. Persistence details
// live in internal/data/aggregates.
package aggregates

// Package aggregates implements the aggregate write boundaries on top of
// GORM transactions and the table repos.
package aggregates

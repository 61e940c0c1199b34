// Package postgres implements the store interfaces on PostgreSQL using
// database/sql over the pgx stdlib driver.
//
// Each store accepts a store.DBTX so it can run against a pooled connection
// or inside a transaction, and maps driver-level errors (no rows, unique
// violations) to the sentinel errors defined in the store package.
package postgres

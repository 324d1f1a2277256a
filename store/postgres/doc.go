// Package postgres implements the CredentialStore contract on PostgreSQL via
// pgx. Email comparison is case-insensitive through a functional unique
// index, and reset-ticket consumption is a single conditional UPDATE so two
// racing consumers can never both win.
package postgres

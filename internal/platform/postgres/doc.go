// Package postgres provides PostgreSQL implementations of the store
// interfaces for equipment and video tasks, the pgx connection helper, and
// the embedded goose schema migrations.
package postgres

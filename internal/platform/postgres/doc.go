// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// It handles query execution, error mapping and the mapping between domain
// entities and database records. The schema ships as goose migrations
// embedded in the binary and applied through Migrate.
package postgres

// Package memory provides in-process implementations of the internal/store
// interfaces. It backs the server when database.driver is "memory" and is
// convenient in tests; nothing survives a restart.
package memory

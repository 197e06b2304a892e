// Package testdb provides utilities specifically for database testing.
package testdb

import "os"

// Environment variables consulted for the integration test database, in order.
const (
	EnvDatabaseURL         = "DATABASE_URL"
	EnvFinancesTestDBURL   = "FINANCES_TEST_DB_URL"
	EnvFinancesDatabaseURL = "FINANCES_DATABASE_URL"
)

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment, or "" when none is configured.
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvDatabaseURL, EnvFinancesTestDBURL, EnvFinancesDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether database-backed tests must be skipped.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

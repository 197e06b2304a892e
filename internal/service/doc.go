// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
//   - EntryService: creating, updating, deleting, searching and settling
//     financial entries, and computing a user's balance.
//   - UserService: registration with a unique email and authentication.
//
// Services receive dependencies through constructor injection and depend only
// on the store interfaces, never on a specific infrastructure implementation.
// Absence is reported as a found flag rather than an error; business-rule
// failures are typed errors the API layer maps to HTTP statuses.
package service

// Package domain contains the core business entities of the finances
// application: users and the financial entries they own, together with the
// validation rules an entry must satisfy before it is stored. It has no
// knowledge of storage or HTTP.
package domain

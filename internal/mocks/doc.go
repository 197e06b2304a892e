// Package mocks provides test doubles for the store and service
// dependencies. Store mocks use testify/mock; the Transactor and
// PasswordVerifier doubles record their calls in plain fields.
package mocks

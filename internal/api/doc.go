// Package api translates HTTP requests into calls on the entry and user
// services and renders their results as JSON. Handlers never touch a store
// directly; error responses go through HandleAPIError so every route maps
// failures to statuses the same way.
package api

package auth

import "errors"

// ErrPasswordMismatch indicates the candidate password does not match the stored one.
var ErrPasswordMismatch = errors.New("password mismatch")

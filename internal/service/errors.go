package service

import "errors"

// ErrOwnerNotFound is returned when a profile names an account that does
// not exist. Generation does not start.
var ErrOwnerNotFound = errors.New("owner not found")

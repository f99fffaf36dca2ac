package service

import "errors"

// ErrUnauthorized is returned for bad login credentials or a wrong seed secret.
var ErrUnauthorized = errors.New("unauthorized")

package session

import "errors"

// ErrSessionNotFound is returned when a session ID is not open in the Manager.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when opening a session ID that is already open.
var ErrSessionExists = errors.New("session already exists")

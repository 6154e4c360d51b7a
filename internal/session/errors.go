package session

import "errors"

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrNoCloud     = errors.New("cloud store is not configured")
)

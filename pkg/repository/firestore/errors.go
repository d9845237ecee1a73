package firestore

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the Firestore backend
var (
	ErrNotFound    = goerr.New("not found")
	ErrUnavailable = goerr.New("storage unavailable")
)

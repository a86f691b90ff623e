package pokeapi

import "go.trai.ch/zerr"

var (
	// ErrFetchFailed is returned when the upstream answers with a non-success status.
	ErrFetchFailed = zerr.New("failed to fetch pokemon")

	// ErrMalformedResponse is returned when the upstream body is not a valid pokemon document.
	ErrMalformedResponse = zerr.New("malformed pokemon response")
)

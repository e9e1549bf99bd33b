package engine

import "errors"

var (
	ErrNotStarted      = errors.New("engine not started")
	ErrAlreadyStarted  = errors.New("engine already started")
	ErrAlreadyShutDown = errors.New("engine already shut down")

	// ErrShutdownTimeout is returned by Shutdown when workers do not drain in time.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")
)

package service

import "errors"

var (
	// ErrValidation rejects a command before any write happens.
	ErrValidation = errors.New("validation failed")

	// ErrNotConfirmed rejects a manual rollover without the confirmation flag.
	ErrNotConfirmed = errors.New("rollover not confirmed")

	// ErrRolloverAborted means the rollover stopped before touching the live
	// board; nothing was archived and no record exists for the attempt.
	ErrRolloverAborted = errors.New("rollover aborted")
)

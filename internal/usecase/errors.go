package usecase

import (
	"errors"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

// clock is replaced in tests that need deterministic timestamps.
var clock = func() time.Time { return time.Now().UTC() }

// lookupErr maps a repository read failure: a missing row becomes NotFound with msg,
// anything else is internal.
func lookupErr(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return apperror.Internal(err)
}

// appErr passes AppErrors through and wraps everything else as internal.
func appErr(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		return err
	}
	return apperror.Internal(err)
}

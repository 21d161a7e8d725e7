package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Sentinel errors returned by services and mapped to HTTP statuses at the
// handler boundary. Anything else is treated as an upstream failure.
var (
	ErrUnauthorized = errors.New("no caller identity")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// notFoundOr converts gorm's record-not-found into ErrNotFound and passes
// everything else through as an upstream failure.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

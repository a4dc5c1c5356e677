package service

import (
	"errors"
	"fmt"

	"github.com/sefazor/eventsphere-backend/internal/repository"
)

// Handler katmanı bu hataları HTTP durum kodlarına çevirir.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound translates a repository miss into ErrNotFound for the named entity.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return err
}

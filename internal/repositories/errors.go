package repositories

import (
	"errors"
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
	"gorm.io/gorm"
)

// translateDuplicate maps a unique-index violation to ErrConflict. The
// database is opened with TranslateError, so drivers surface duplicates as
// gorm.ErrDuplicatedKey; the loser of a concurrent first-toggle race then
// gets a deterministic conflict instead of a raw driver error.
func translateDuplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", msg, apperr.ErrConflict)
	}
	return err
}

package repositories

import (
	"errors"
	"net/http"
	"testing"

	"github.com/archinet-app/backend/internal/apperr"
	"gorm.io/gorm"
)

func TestTranslateDuplicate(t *testing.T) {
	err := translateDuplicate(gorm.ErrDuplicatedKey, "like already exists")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict for duplicated key, got %v", err)
	}
	if apperr.Status(err) != http.StatusConflict {
		t.Fatalf("expected 409 mapping, got %d", apperr.Status(err))
	}

	// Anything else passes through untouched.
	other := errors.New("connection reset")
	if got := translateDuplicate(other, "like already exists"); got != other {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

package repositories

import (
	"errors"
	"testing"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
)

func TestCreateUserRejectsDuplicates(t *testing.T) {
	store := NewMemoryStore()
	seedUser(t, store, "alice")

	sameEmail := &models.User{
		Name:     "Alice Clone",
		Username: "alice2",
		Email:    "ALICE@example.com",
		Password: "hashed",
		Role:     models.RoleStudent,
	}
	if err := store.CreateUser(sameEmail); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}

	sameUsername := &models.User{
		Name:     "Alice Clone",
		Username: "Alice",
		Email:    "other@example.com",
		Password: "hashed",
		Role:     models.RoleStudent,
	}
	if err := store.CreateUser(sameUsername); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
}

func TestSearchUsers(t *testing.T) {
	store := NewMemoryStore()
	seedUser(t, store, "alice")
	seedUser(t, store, "bob")
	seedUser(t, store, "alicia")

	found, err := store.SearchUsers("ali")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}
}

func TestBlockPairQueries(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	if err := store.Block(alice.ID, bob.ID); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := store.Block(alice.ID, bob.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on double block, got %v", err)
	}

	// Blocks apply in both directions.
	blocked, err := store.IsBlocked(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("is blocked: %v", err)
	}
	if !blocked {
		t.Fatal("expected pair to be blocked in either direction")
	}

	if err := store.Unblock(alice.ID, bob.ID); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if err := store.Unblock(alice.ID, bob.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on second unblock, got %v", err)
	}
}

func TestMuteListing(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")

	if err := store.Mute(alice.ID, bob.ID); err != nil {
		t.Fatalf("mute: %v", err)
	}
	if err := store.Mute(alice.ID, carol.ID); err != nil {
		t.Fatalf("mute: %v", err)
	}

	ids, err := store.GetMutedIDs(alice.ID)
	if err != nil {
		t.Fatalf("muted ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 muted users, got %d", len(ids))
	}

	if err := store.Unmute(alice.ID, bob.ID); err != nil {
		t.Fatalf("unmute: %v", err)
	}
	ids, err = store.GetMutedIDs(alice.ID)
	if err != nil {
		t.Fatalf("muted ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != carol.ID {
		t.Fatalf("expected only carol muted, got %v", ids)
	}
}

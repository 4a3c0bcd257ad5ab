package repositories

import (
	"testing"

	"github.com/archinet-app/backend/internal/models"
)

func TestToggleLike(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	ref := models.ContentRef{Kind: models.KindPost, ID: "1"}

	state, err := store.ToggleLike(alice.ID, ref)
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if !state.Liked || state.Count != 1 {
		t.Fatalf("expected liked with count 1, got %+v", state)
	}

	state, err = store.ToggleLike(bob.ID, ref)
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if !state.Liked || state.Count != 2 {
		t.Fatalf("expected count 2 after second user, got %+v", state)
	}

	state, err = store.ToggleLike(alice.ID, ref)
	if err != nil {
		t.Fatalf("toggle like back: %v", err)
	}
	if state.Liked || state.Count != 1 {
		t.Fatalf("expected unliked with count 1, got %+v", state)
	}

	liked, err := store.HasLiked(alice.ID, ref)
	if err != nil {
		t.Fatalf("has liked: %v", err)
	}
	if liked {
		t.Fatal("alice should no longer like the post")
	}
}

func TestLikesAreScopedByTarget(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")

	post := models.ContentRef{Kind: models.KindPost, ID: "7"}
	project := models.ContentRef{Kind: models.KindProject, ID: "7"}

	if _, err := store.ToggleLike(alice.ID, post); err != nil {
		t.Fatalf("toggle like: %v", err)
	}

	count, err := store.Count(project)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("same id under another kind should not share likes, got %d", count)
	}
}

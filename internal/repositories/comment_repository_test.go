package repositories

import (
	"errors"
	"testing"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
)

func TestCreateCommentAndReply(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	root := models.Comment{
		UserID:     alice.ID,
		TargetType: models.KindPost,
		TargetID:   "1",
		Content:    "love the cantilever",
	}
	if err := store.CreateComment(&root); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	reply := models.Comment{
		UserID:     bob.ID,
		TargetType: models.KindPost,
		TargetID:   "1",
		ParentID:   &root.ID,
		Content:    "agreed",
	}
	if err := store.CreateComment(&reply); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	comments, err := store.ListByTarget(models.ContentRef{Kind: models.KindPost, ID: "1"})
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].ID != root.ID {
		t.Fatalf("expected oldest first, got %d", comments[0].ID)
	}
}

func TestReplyToMissingParent(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")

	missing := uint(999)
	reply := models.Comment{
		UserID:     alice.ID,
		TargetType: models.KindPost,
		TargetID:   "1",
		ParentID:   &missing,
		Content:    "orphan",
	}
	if err := store.CreateComment(&reply); !errors.Is(err, apperr.ErrInvalidReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
}

func TestReplyMustShareParentTarget(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	root := models.Comment{
		UserID:     alice.ID,
		TargetType: models.KindPost,
		TargetID:   "1",
		Content:    "on the post",
	}
	if err := store.CreateComment(&root); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	// Same id, different kind: the parent lives on another target.
	reply := models.Comment{
		UserID:     bob.ID,
		TargetType: models.KindProject,
		TargetID:   "1",
		ParentID:   &root.ID,
		Content:    "on the project",
	}
	if err := store.CreateComment(&reply); !errors.Is(err, apperr.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for cross-target reply, got %v", err)
	}

	reply = models.Comment{
		UserID:     bob.ID,
		TargetType: models.KindPost,
		TargetID:   "2",
		ParentID:   &root.ID,
		Content:    "on another post",
	}
	if err := store.CreateComment(&reply); !errors.Is(err, apperr.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for cross-id reply, got %v", err)
	}
}

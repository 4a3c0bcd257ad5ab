package repositories

import (
	"errors"
	"testing"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
)

func seedUser(t *testing.T, store *MemoryStore, username string) *models.User {
	t.Helper()
	u := &models.User{
		Name:     username,
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     models.RoleEngineer,
	}
	if err := store.CreateUser(u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func TestToggleFollowCreatesPendingThenRemoves(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	state, err := store.ToggleFollow(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	if !state.Following || state.Status != models.FollowStatusPending {
		t.Fatalf("expected pending follow, got %+v", state)
	}

	// Pending requests do not count as following.
	following, err := store.IsFollowing(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if following {
		t.Fatal("pending follow should not count as following")
	}

	state, err = store.ToggleFollow(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("toggle follow again: %v", err)
	}
	if state.Following {
		t.Fatalf("second toggle should remove the edge, got %+v", state)
	}
	if _, err := store.GetFollow(alice.ID, bob.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected edge gone, got %v", err)
	}
}

func TestUnfollowIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	if _, err := store.ToggleFollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	if err := store.Unfollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if _, err := store.GetFollow(alice.ID, bob.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected edge gone, got %v", err)
	}

	// Removing an absent edge is not an error.
	if err := store.Unfollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("second unfollow: %v", err)
	}
}

func TestRespondAcceptEstablishesFollow(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	if _, err := store.ToggleFollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	edge, err := store.GetFollow(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("get follow: %v", err)
	}

	follow, err := store.Respond(edge.ID, bob.ID, models.FollowStatusAccepted)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if follow.Status != models.FollowStatusAccepted {
		t.Fatalf("expected accepted, got %s", follow.Status)
	}

	following, err := store.IsFollowing(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("is following: %v", err)
	}
	if !following {
		t.Fatal("accepted follow should count as following")
	}

	count, err := store.GetFollowersCount(bob.ID)
	if err != nil {
		t.Fatalf("followers count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 follower, got %d", count)
	}
}

func TestRespondOnlyByRecipient(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")

	if _, err := store.ToggleFollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	edge, err := store.GetFollow(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("get follow: %v", err)
	}

	if _, err := store.Respond(edge.ID, carol.ID, models.FollowStatusAccepted); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-recipient, got %v", err)
	}
}

func TestRespondTwiceIsInvalidState(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	if _, err := store.ToggleFollow(alice.ID, bob.ID); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	edge, err := store.GetFollow(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("get follow: %v", err)
	}
	if _, err := store.Respond(edge.ID, bob.ID, models.FollowStatusAccepted); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	if _, err := store.Respond(edge.ID, bob.ID, models.FollowStatusRejected); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("expected invalid state on second respond, got %v", err)
	}
}

func TestGetPendingRequests(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")

	if _, err := store.ToggleFollow(alice.ID, carol.ID); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	if _, err := store.ToggleFollow(bob.ID, carol.ID); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}

	pending, err := store.GetPendingRequests(carol.ID)
	if err != nil {
		t.Fatalf("pending requests: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending requests, got %d", len(pending))
	}
}

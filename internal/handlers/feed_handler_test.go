package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
)

func acceptFollow(t *testing.T, store *repositories.MemoryStore, follower, following uint) {
	t.Helper()
	if _, err := store.ToggleFollow(follower, following); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	edge, err := store.GetFollow(follower, following)
	if err != nil {
		t.Fatalf("get follow: %v", err)
	}
	if _, err := store.Respond(edge.ID, following, models.FollowStatusAccepted); err != nil {
		t.Fatalf("respond: %v", err)
	}
}

func TestFeedFiltersMutedAuthors(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	h := NewFeedHandler(store, store, store, store, store, store)

	alice := seedHandlerUser(t, store, "alice")
	bob := seedHandlerUser(t, store, "bob")
	carol := seedHandlerUser(t, store, "carol")
	dave := seedHandlerUser(t, store, "dave")

	acceptFollow(t, store, alice.ID, bob.ID)
	acceptFollow(t, store, alice.ID, carol.ID)

	for _, author := range []*models.User{alice, bob, carol, dave} {
		post := &models.Post{UserID: author.ID, Content: author.Name + "'s post"}
		if err := store.CreatePost(post); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	if err := store.Mute(alice.ID, carol.ID); err != nil {
		t.Fatalf("mute: %v", err)
	}

	c, rec := doJSON(e, http.MethodGet, "/api/v1/feed", "", alice.ID)
	if err := h.GetFeed(c); err != nil {
		t.Fatalf("get feed: %v", err)
	}

	var resp struct {
		Posts []FeedPost `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode feed: %v", err)
	}

	// Own and bob's posts only: carol is muted, dave is not followed.
	if len(resp.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(resp.Posts))
	}
	for _, p := range resp.Posts {
		if p.UserID == carol.ID || p.UserID == dave.ID {
			t.Fatalf("unexpected author %d in feed", p.UserID)
		}
		if p.Author.ID != p.UserID {
			t.Fatalf("author mismatch: %+v", p)
		}
	}
}

func TestFeedExcludesAuthorsWhoBlockedViewer(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	h := NewFeedHandler(store, store, store, store, store, store)

	alice := seedHandlerUser(t, store, "alice")
	bob := seedHandlerUser(t, store, "bob")

	acceptFollow(t, store, alice.ID, bob.ID)

	post := &models.Post{UserID: bob.ID, Content: "bob's post"}
	if err := store.CreatePost(post); err != nil {
		t.Fatalf("create post: %v", err)
	}

	// The block arrives after the follow; the edge still exists, but bob's
	// posts must disappear from alice's feed all the same.
	if err := store.Block(bob.ID, alice.ID); err != nil {
		t.Fatalf("block: %v", err)
	}

	c, rec := doJSON(e, http.MethodGet, "/api/v1/feed", "", alice.ID)
	if err := h.GetFeed(c); err != nil {
		t.Fatalf("get feed: %v", err)
	}

	var resp struct {
		Posts []FeedPost `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	for _, p := range resp.Posts {
		if p.UserID == bob.ID {
			t.Fatalf("author who blocked the viewer appeared in the feed: %+v", p)
		}
	}
}

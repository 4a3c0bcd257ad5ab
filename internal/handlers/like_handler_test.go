package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

func TestToggleLikeNotifiesAuthor(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	resolver := &ContentResolver{PostRepo: store}
	h := NewLikeHandler(store, store, store, resolver)

	alice := seedHandlerUser(t, store, "alice")
	bob := seedHandlerUser(t, store, "bob")

	post := &models.Post{UserID: bob.ID, Content: "new pavilion render"}
	if err := store.CreatePost(post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	postID := strconv.FormatUint(uint64(post.ID), 10)

	c, rec := doJSON(e, http.MethodPost, "/", "", alice.ID)
	c.SetParamNames("targetType", "targetId")
	c.SetParamValues("post", postID)
	if err := h.ToggleLike(c); err != nil {
		t.Fatalf("toggle like: %v", err)
	}

	var state models.LikeState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if !state.Liked || state.Count != 1 {
		t.Fatalf("expected liked with count 1, got %+v", state)
	}

	notifications, total, err := store.GetByRecipientID(bob.ID, 1, 10)
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if total != 1 || notifications[0].Type != models.NotificationLike {
		t.Fatalf("expected one like notification, got total %d: %+v", total, notifications)
	}

	// Toggling back removes the like but never the notification.
	c, rec = doJSON(e, http.MethodPost, "/", "", alice.ID)
	c.SetParamNames("targetType", "targetId")
	c.SetParamValues("post", postID)
	if err := h.ToggleLike(c); err != nil {
		t.Fatalf("toggle like back: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Liked || state.Count != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", state)
	}
}

func TestToggleLikeUnknownKind(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	h := NewLikeHandler(store, store, store, &ContentResolver{})

	alice := seedHandlerUser(t, store, "alice")

	c, _ := doJSON(e, http.MethodPost, "/", "", alice.ID)
	c.SetParamNames("targetType", "targetId")
	c.SetParamValues("video", "1")
	err := h.ToggleLike(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind, got %v", err)
	}
}

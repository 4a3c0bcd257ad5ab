package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

func seedHandlerUser(t *testing.T, store *repositories.MemoryStore, username string) *models.User {
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

func TestMessageThreadRendering(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	h := NewMessageHandler(store, store, store)

	alice := seedHandlerUser(t, store, "alice")
	bob := seedHandlerUser(t, store, "bob")

	// Alice opens the thread.
	body := fmt.Sprintf(`{"receiver_id":%d,"content":"first draft looks great"}`, bob.ID)
	c, rec := doJSON(e, http.MethodPost, "/api/v1/messages", body, alice.ID)
	if err := h.SendMessage(c); err != nil {
		t.Fatalf("send: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var first models.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode message: %v", err)
	}

	// Bob replies, quoting the first message.
	body = fmt.Sprintf(`{"receiver_id":%d,"content":"thanks!","reply_to_id":%d}`, alice.ID, first.ID)
	c, rec = doJSON(e, http.MethodPost, "/api/v1/messages", body, bob.ID)
	if err := h.SendMessage(c); err != nil {
		t.Fatalf("reply: %v", err)
	}
	var reply models.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}

	// Alice deletes her message; the quote must degrade to the sentinel.
	c, _ = doJSON(e, http.MethodDelete, "/", "", alice.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(first.ID), 10))
	if err := h.DeleteMessage(c); err != nil {
		t.Fatalf("delete: %v", err)
	}

	c, rec = doJSON(e, http.MethodGet, "/", "", bob.ID)
	c.SetParamNames("peerId")
	c.SetParamValues(strconv.FormatUint(uint64(alice.ID), 10))
	if err := h.ListMessages(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var views []MessageView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode thread: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(views))
	}
	if views[0].Content != models.DeletedMessageBody {
		t.Fatalf("expected placeholder for deleted message, got %q", views[0].Content)
	}
	if views[1].ReplyPreview != models.DeletedReplyBody {
		t.Fatalf("expected deleted reply sentinel, got %q", views[1].ReplyPreview)
	}
}

func TestMarkReadEndpoint(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	h := NewMessageHandler(store, store, store)

	alice := seedHandlerUser(t, store, "alice")
	bob := seedHandlerUser(t, store, "bob")

	for _, content := range []string{"ping", "ping again"} {
		msg := &models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: content}
		if err := store.Send(msg); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	c, rec := doJSON(e, http.MethodPut, "/", "", bob.ID)
	c.SetParamNames("peerId")
	c.SetParamValues(strconv.FormatUint(uint64(alice.ID), 10))
	if err := h.MarkRead(c); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	convos, err := store.ListConversations(bob.ID)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(convos) != 1 || convos[0].UnreadCount != 0 {
		t.Fatalf("expected no unread after mark read, got %+v", convos)
	}
}

func TestSendMessageBlockedPair(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	h := NewMessageHandler(store, store, store)

	alice := seedHandlerUser(t, store, "alice")
	bob := seedHandlerUser(t, store, "bob")

	if err := store.Block(bob.ID, alice.ID); err != nil {
		t.Fatalf("block: %v", err)
	}

	body := fmt.Sprintf(`{"receiver_id":%d,"content":"hello?"}`, bob.ID)
	c, _ := doJSON(e, http.MethodPost, "/api/v1/messages", body, alice.ID)
	err := h.SendMessage(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for blocked pair, got %v", err)
	}
}

func TestEditDeletedMessageFails(t *testing.T) {
	e := newTestEcho()
	store := repositories.NewMemoryStore()
	h := NewMessageHandler(store, store, store)

	alice := seedHandlerUser(t, store, "alice")
	bob := seedHandlerUser(t, store, "bob")

	msg := &models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: "oops"}
	if err := store.Send(msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := store.Delete(msg.ID, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	c, _ := doJSON(e, http.MethodPut, "/", `{"content":"fixed"}`, alice.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(msg.ID), 10))
	err := h.EditMessage(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 editing a deleted message, got %v", err)
	}
}

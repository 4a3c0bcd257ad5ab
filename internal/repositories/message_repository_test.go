package repositories

import (
	"errors"
	"testing"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
)

func sendMessage(t *testing.T, store *MemoryStore, from, to uint, content string) *models.Message {
	t.Helper()
	msg := &models.Message{SenderID: from, ReceiverID: to, Content: content}
	if err := store.Send(msg); err != nil {
		t.Fatalf("send %q: %v", content, err)
	}
	return msg
}

func TestReplyStaysInConversation(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")

	first := sendMessage(t, store, alice.ID, bob.ID, "hello")

	// Replying from the other direction is fine.
	reply := &models.Message{SenderID: bob.ID, ReceiverID: alice.ID, Content: "hi", ReplyToID: &first.ID}
	if err := store.Send(reply); err != nil {
		t.Fatalf("reply: %v", err)
	}

	// Carol's thread with alice cannot quote alice<->bob messages.
	cross := &models.Message{SenderID: carol.ID, ReceiverID: alice.ID, Content: "me too", ReplyToID: &first.ID}
	if err := store.Send(cross); !errors.Is(err, apperr.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for cross-conversation reply, got %v", err)
	}

	missing := uint(999)
	dangling := &models.Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: "??", ReplyToID: &missing}
	if err := store.Send(dangling); !errors.Is(err, apperr.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for dangling reply, got %v", err)
	}
}

func TestListBetweenWindowKeepsNewest(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	sendMessage(t, store, alice.ID, bob.ID, "one")
	second := sendMessage(t, store, bob.ID, alice.ID, "two")
	third := sendMessage(t, store, alice.ID, bob.ID, "three")

	// A window smaller than the thread must drop the oldest messages, not
	// the newest, and still read chronologically.
	msgs, err := store.ListBetween(bob.ID, alice.ID, 2)
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != second.ID || msgs[1].ID != third.ID {
		t.Fatalf("expected window [%d %d], got [%d %d]", second.ID, third.ID, msgs[0].ID, msgs[1].ID)
	}
}

func TestEditOnlyBySender(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	msg := sendMessage(t, store, alice.ID, bob.ID, "draft")

	if _, err := store.Edit(msg.ID, bob.ID, "hijacked"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-sender edit, got %v", err)
	}

	edited, err := store.Edit(msg.ID, alice.ID, "final")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Content != "final" || !edited.IsEdited {
		t.Fatalf("unexpected edit result: %+v", edited)
	}
}

func TestDeletedMessageLifecycle(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	msg := sendMessage(t, store, alice.ID, bob.ID, "take this down")

	if _, err := store.Delete(msg.ID, bob.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-sender delete, got %v", err)
	}

	deleted, err := store.Delete(msg.ID, alice.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted.IsDeleted {
		t.Fatalf("expected deleted flag, got %+v", deleted)
	}

	// Deleted is terminal: no edits and no second delete.
	if _, err := store.Edit(msg.ID, alice.ID, "resurrect"); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("expected invalid state editing deleted message, got %v", err)
	}
	if _, err := store.Delete(msg.ID, alice.ID); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("expected invalid state deleting twice, got %v", err)
	}

	// The row survives and renders with the placeholder body.
	stored, err := store.GetMessageByID(msg.ID)
	if err != nil {
		t.Fatalf("get deleted message: %v", err)
	}
	stored.Sanitize()
	if stored.Content != models.DeletedMessageBody {
		t.Fatalf("expected %q, got %q", models.DeletedMessageBody, stored.Content)
	}
}

func TestToggleMessageLike(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")

	msg := sendMessage(t, store, alice.ID, bob.ID, "likeable")

	// Only the two participants can react.
	if _, err := store.ToggleMessageLike(msg.ID, carol.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-participant, got %v", err)
	}

	state, err := store.ToggleMessageLike(msg.ID, bob.ID)
	if err != nil {
		t.Fatalf("toggle message like: %v", err)
	}
	if !state.Liked || state.Count != 1 {
		t.Fatalf("expected liked with count 1, got %+v", state)
	}

	state, err = store.ToggleMessageLike(msg.ID, bob.ID)
	if err != nil {
		t.Fatalf("toggle message like back: %v", err)
	}
	if state.Liked || state.Count != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", state)
	}

	if _, err := store.ToggleMessageLike(999, bob.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for missing message, got %v", err)
	}
}

func TestConversationsDerivedPerPeer(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	carol := seedUser(t, store, "carol")

	sendMessage(t, store, alice.ID, bob.ID, "hey bob")
	sendMessage(t, store, bob.ID, alice.ID, "hey alice")
	sendMessage(t, store, bob.ID, alice.ID, "you there?")
	sendMessage(t, store, carol.ID, alice.ID, "question about your project")

	convos, err := store.ListConversations(alice.ID)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(convos) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convos))
	}

	// Newest conversation first.
	if convos[0].PeerID != carol.ID {
		t.Fatalf("expected carol's thread first, got peer %d", convos[0].PeerID)
	}
	if convos[0].UnreadCount != 1 {
		t.Fatalf("expected 1 unread from carol, got %d", convos[0].UnreadCount)
	}
	if convos[1].PeerID != bob.ID || convos[1].UnreadCount != 2 {
		t.Fatalf("expected 2 unread from bob, got %+v", convos[1])
	}
	if convos[1].LastMessage == nil || convos[1].LastMessage.Content != "you there?" {
		t.Fatalf("expected newest message as last, got %+v", convos[1].LastMessage)
	}

	if err := store.MarkConversationRead(alice.ID, bob.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	convos, err = store.ListConversations(alice.ID)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	for _, convo := range convos {
		if convo.PeerID == bob.ID && convo.UnreadCount != 0 {
			t.Fatalf("expected bob's thread read, got %d unread", convo.UnreadCount)
		}
	}
}

func TestConversationPreviewSanitizesDeleted(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	msg := sendMessage(t, store, alice.ID, bob.ID, "secret")
	if _, err := store.Delete(msg.ID, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	convos, err := store.ListConversations(bob.ID)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(convos) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convos))
	}
	if convos[0].LastMessage.Content != models.DeletedMessageBody {
		t.Fatalf("expected placeholder preview, got %q", convos[0].LastMessage.Content)
	}
}

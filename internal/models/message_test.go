package models

import "testing"

func TestSanitizeReplacesDeletedContent(t *testing.T) {
	msg := Message{Content: "original"}
	msg.Sanitize()
	if msg.Content != "original" {
		t.Fatalf("live message should keep its content, got %q", msg.Content)
	}

	msg = Message{Content: "original", IsDeleted: true}
	msg.Sanitize()
	if msg.Content != DeletedMessageBody {
		t.Fatalf("expected %q, got %q", DeletedMessageBody, msg.Content)
	}
}

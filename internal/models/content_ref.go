package models

import (
	"fmt"

	"github.com/archinet-app/backend/internal/apperr"
)

// ContentKind tags the target of a polymorphic annotation (like, comment,
// saved item). Storage keeps the (type, id) two-column encoding; handlers and
// repositories pass the parsed ContentRef so target kinds are matched
// exhaustively instead of compared as raw strings.
type ContentKind string

const (
	KindPost        ContentKind = "post"
	KindProject     ContentKind = "project"
	KindCompetition ContentKind = "competition"
	KindBook        ContentKind = "book"
	KindResearch    ContentKind = "research"
	KindTool        ContentKind = "tool"
	KindNews        ContentKind = "news"
	KindComment     ContentKind = "comment"
)

// ParseContentKind validates a raw target type string.
func ParseContentKind(s string) (ContentKind, error) {
	k := ContentKind(s)
	switch k {
	case KindPost, KindProject, KindCompetition, KindBook,
		KindResearch, KindTool, KindNews, KindComment:
		return k, nil
	}
	return "", fmt.Errorf("unknown content kind %q: %w", s, apperr.ErrValidation)
}

// ContentRef identifies one content item of any kind.
type ContentRef struct {
	Kind ContentKind `json:"target_type"`
	ID   string      `json:"target_id"`
}

// NewContentRef parses and validates a (type, id) pair.
func NewContentRef(kind, id string) (ContentRef, error) {
	k, err := ParseContentKind(kind)
	if err != nil {
		return ContentRef{}, err
	}
	if id == "" {
		return ContentRef{}, fmt.Errorf("empty target id: %w", apperr.ErrValidation)
	}
	return ContentRef{Kind: k, ID: id}, nil
}

func (r ContentRef) String() string {
	return string(r.Kind) + "/" + r.ID
}

package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/archinet-app/backend/internal/apperr"
	"github.com/archinet-app/backend/internal/models"
)

// MemoryStore is an in-process implementation of every repository interface,
// guarded by one mutex so the toggle operations are serialized exactly like
// their transactional Postgres counterparts. The test suite runs against it;
// nothing in production wires it.
type MemoryStore struct {
	mu sync.RWMutex

	nextID uint

	users         map[uint]models.User
	follows       map[uint]models.Follow
	blocks        map[uint]models.BlockedUser
	mutes         map[uint]models.MutedUser
	likes         map[uint]models.Like
	comments      map[uint]models.Comment
	saved         map[uint]models.SavedItem
	messages      map[uint]models.Message
	messageLikes  map[uint]models.MessageLike
	notifications map[uint]models.Notification
	posts         map[uint]models.Post
	projects      map[uint]models.Project
	jobs          map[uint]models.Job
	applications  map[uint]models.JobApplication
	research      map[uint]models.ResearchPaper
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uint]models.User),
		follows:       make(map[uint]models.Follow),
		blocks:        make(map[uint]models.BlockedUser),
		mutes:         make(map[uint]models.MutedUser),
		likes:         make(map[uint]models.Like),
		comments:      make(map[uint]models.Comment),
		saved:         make(map[uint]models.SavedItem),
		messages:      make(map[uint]models.Message),
		messageLikes:  make(map[uint]models.MessageLike),
		notifications: make(map[uint]models.Notification),
		posts:         make(map[uint]models.Post),
		projects:      make(map[uint]models.Project),
		jobs:          make(map[uint]models.Job),
		applications:  make(map[uint]models.JobApplication),
		research:      make(map[uint]models.ResearchPaper),
	}
}

func (m *MemoryStore) allocID() uint {
	m.nextID++
	return m.nextID
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// --- UserRepository ---

func (m *MemoryStore) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username) {
			return fmt.Errorf("email or username already registered: %w", apperr.ErrConflict)
		}
	}
	user.ID = m.allocID()
	user.CreatedAt = stamp(user.CreatedAt)
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) GetUserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	return &u, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
}

func (m *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, apperr.ErrNotFound)
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, apperr.ErrNotFound)
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) SearchUsers(query string) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(query)
	var result []models.User
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// --- FollowRepository ---

func (m *MemoryStore) findFollow(followerID, followingID uint) (models.Follow, bool) {
	for _, f := range m.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return f, true
		}
	}
	return models.Follow{}, false
}

func (m *MemoryStore) ToggleFollow(followerID, followingID uint) (*models.FollowState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.findFollow(followerID, followingID); ok {
		delete(m.follows, f.ID)
		return &models.FollowState{Following: false}, nil
	}
	f := models.Follow{
		ID:          m.allocID(),
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      models.FollowStatusPending,
		CreatedAt:   time.Now(),
	}
	f.UpdatedAt = f.CreatedAt
	m.follows[f.ID] = f
	return &models.FollowState{Following: true, Status: models.FollowStatusPending}, nil
}

func (m *MemoryStore) Unfollow(followerID, followingID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.findFollow(followerID, followingID); ok {
		delete(m.follows, f.ID)
	}
	return nil
}

func (m *MemoryStore) Respond(followID, ownerID uint, status models.FollowStatus) (*models.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.follows[followID]
	if !ok {
		return nil, fmt.Errorf("follow request %d: %w", followID, apperr.ErrNotFound)
	}
	if f.FollowingID != ownerID {
		return nil, fmt.Errorf("follow request %d is not addressed to user %d: %w", followID, ownerID, apperr.ErrForbidden)
	}
	if f.Status != models.FollowStatusPending {
		return nil, fmt.Errorf("follow request %d is already %s: %w", followID, f.Status, apperr.ErrInvalidState)
	}
	f.Status = status
	f.UpdatedAt = time.Now()
	m.follows[f.ID] = f
	return &f, nil
}

func (m *MemoryStore) GetFollow(followerID, followingID uint) (*models.Follow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.findFollow(followerID, followingID); ok {
		return &f, nil
	}
	return nil, fmt.Errorf("follow edge: %w", apperr.ErrNotFound)
}

func (m *MemoryStore) IsFollowing(followerID, followingID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.findFollow(followerID, followingID)
	return ok && f.Status == models.FollowStatusAccepted, nil
}

func (m *MemoryStore) GetFollowers(userID uint) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []models.User
	for _, f := range m.follows {
		if f.FollowingID == userID && f.Status == models.FollowStatusAccepted {
			if u, ok := m.users[f.FollowerID]; ok {
				users = append(users, u)
			}
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryStore) GetFollowing(userID uint) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []models.User
	for _, f := range m.follows {
		if f.FollowerID == userID && f.Status == models.FollowStatusAccepted {
			if u, ok := m.users[f.FollowingID]; ok {
				users = append(users, u)
			}
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryStore) GetFollowingIDs(userID uint) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, f := range m.follows {
		if f.FollowerID == userID && f.Status == models.FollowStatusAccepted {
			ids = append(ids, f.FollowingID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemoryStore) GetPendingRequests(userID uint) ([]models.Follow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var follows []models.Follow
	for _, f := range m.follows {
		if f.FollowingID == userID && f.Status == models.FollowStatusPending {
			follows = append(follows, f)
		}
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].ID > follows[j].ID })
	return follows, nil
}

func (m *MemoryStore) GetFollowersCount(userID uint) (int64, error) {
	users, _ := m.GetFollowers(userID)
	return int64(len(users)), nil
}

func (m *MemoryStore) GetFollowingCount(userID uint) (int64, error) {
	users, _ := m.GetFollowing(userID)
	return int64(len(users)), nil
}

// --- RelationshipRepository ---

func (m *MemoryStore) Block(actorID, targetID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blocks {
		if b.ActorID == actorID && b.TargetID == targetID {
			return fmt.Errorf("user %d already blocked: %w", targetID, apperr.ErrConflict)
		}
	}
	b := models.BlockedUser{ID: m.allocID(), ActorID: actorID, TargetID: targetID, CreatedAt: time.Now()}
	m.blocks[b.ID] = b
	return nil
}

func (m *MemoryStore) Unblock(actorID, targetID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.blocks {
		if b.ActorID == actorID && b.TargetID == targetID {
			delete(m.blocks, id)
			return nil
		}
	}
	return fmt.Errorf("block edge: %w", apperr.ErrNotFound)
}

func (m *MemoryStore) IsBlocked(a, b uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.blocks {
		if (e.ActorID == a && e.TargetID == b) || (e.ActorID == b && e.TargetID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) Mute(actorID, targetID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.mutes {
		if e.ActorID == actorID && e.TargetID == targetID {
			return fmt.Errorf("user %d already muted: %w", targetID, apperr.ErrConflict)
		}
	}
	e := models.MutedUser{ID: m.allocID(), ActorID: actorID, TargetID: targetID, CreatedAt: time.Now()}
	m.mutes[e.ID] = e
	return nil
}

func (m *MemoryStore) Unmute(actorID, targetID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.mutes {
		if e.ActorID == actorID && e.TargetID == targetID {
			delete(m.mutes, id)
			return nil
		}
	}
	return fmt.Errorf("mute edge: %w", apperr.ErrNotFound)
}

func (m *MemoryStore) GetMutedIDs(actorID uint) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, e := range m.mutes {
		if e.ActorID == actorID {
			ids = append(ids, e.TargetID)
		}
	}
	return ids, nil
}

func (m *MemoryStore) GetBlockedPeerIDs(userID uint) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint
	for _, e := range m.blocks {
		switch userID {
		case e.ActorID:
			ids = append(ids, e.TargetID)
		case e.TargetID:
			ids = append(ids, e.ActorID)
		}
	}
	return ids, nil
}

// --- LikeRepository ---

func (m *MemoryStore) likeCountLocked(ref models.ContentRef) int64 {
	var count int64
	for _, l := range m.likes {
		if l.TargetType == ref.Kind && l.TargetID == ref.ID {
			count++
		}
	}
	return count
}

func (m *MemoryStore) ToggleLike(userID uint, ref models.ContentRef) (*models.LikeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.likes {
		if l.UserID == userID && l.TargetType == ref.Kind && l.TargetID == ref.ID {
			delete(m.likes, id)
			return &models.LikeState{Liked: false, Count: m.likeCountLocked(ref)}, nil
		}
	}
	l := models.Like{ID: m.allocID(), UserID: userID, TargetType: ref.Kind, TargetID: ref.ID, CreatedAt: time.Now()}
	m.likes[l.ID] = l
	return &models.LikeState{Liked: true, Count: m.likeCountLocked(ref)}, nil
}

func (m *MemoryStore) Count(ref models.ContentRef) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.likeCountLocked(ref), nil
}

func (m *MemoryStore) HasLiked(userID uint, ref models.ContentRef) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.likes {
		if l.UserID == userID && l.TargetType == ref.Kind && l.TargetID == ref.ID {
			return true, nil
		}
	}
	return false, nil
}

// --- CommentRepository ---

func (m *MemoryStore) CreateComment(comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if comment.ParentID != nil {
		parent, ok := m.comments[*comment.ParentID]
		if !ok {
			return fmt.Errorf("parent comment %d does not exist: %w", *comment.ParentID, apperr.ErrInvalidReference)
		}
		if parent.TargetType != comment.TargetType || parent.TargetID != comment.TargetID {
			return fmt.Errorf("parent comment %d belongs to %s/%s: %w",
				parent.ID, parent.TargetType, parent.TargetID, apperr.ErrInvalidReference)
		}
	}
	comment.ID = m.allocID()
	comment.CreatedAt = stamp(comment.CreatedAt)
	m.comments[comment.ID] = *comment
	return nil
}

func (m *MemoryStore) GetCommentByID(id uint) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %d: %w", id, apperr.ErrNotFound)
	}
	return &c, nil
}

func (m *MemoryStore) ListByTarget(ref models.ContentRef) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var comments []models.Comment
	for _, c := range m.comments {
		if c.TargetType == ref.Kind && c.TargetID == ref.ID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *MemoryStore) CountByTarget(ref models.ContentRef) (int64, error) {
	comments, _ := m.ListByTarget(ref)
	return int64(len(comments)), nil
}

// --- SavedItemRepository ---

func (m *MemoryStore) ToggleSave(userID uint, ref models.ContentRef) (*models.SaveState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.saved {
		if s.UserID == userID && s.TargetType == ref.Kind && s.TargetID == ref.ID {
			delete(m.saved, id)
			return &models.SaveState{Saved: false}, nil
		}
	}
	s := models.SavedItem{ID: m.allocID(), UserID: userID, TargetType: ref.Kind, TargetID: ref.ID, CreatedAt: time.Now()}
	m.saved[s.ID] = s
	return &models.SaveState{Saved: true}, nil
}

func (m *MemoryStore) SetFavorite(userID uint, ref models.ContentRef, isFavorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.saved {
		if s.UserID == userID && s.TargetType == ref.Kind && s.TargetID == ref.ID {
			s.IsFavorite = isFavorite
			m.saved[id] = s
			return nil
		}
	}
	return fmt.Errorf("saved item %s: %w", ref, apperr.ErrNotFound)
}

func (m *MemoryStore) IsSaved(userID uint, ref models.ContentRef) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.saved {
		if s.UserID == userID && s.TargetType == ref.Kind && s.TargetID == ref.ID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) ListByUser(userID uint) ([]models.SavedItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var items []models.SavedItem
	for _, s := range m.saved {
		if s.UserID == userID {
			items = append(items, s)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (m *MemoryStore) GetSavedIDs(userID uint, kind models.ContentKind, ids []string) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]bool)
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, s := range m.saved {
		if s.UserID == userID && s.TargetType == kind && want[s.TargetID] {
			result[s.TargetID] = true
		}
	}
	return result, nil
}

// --- MessageRepository ---

func (m *MemoryStore) Send(msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ReplyToID != nil {
		target, ok := m.messages[*msg.ReplyToID]
		if !ok {
			return fmt.Errorf("reply target %d does not exist: %w", *msg.ReplyToID, apperr.ErrInvalidReference)
		}
		if !samePair(&target, msg) {
			return fmt.Errorf("reply target %d belongs to another conversation: %w", target.ID, apperr.ErrInvalidReference)
		}
	}
	msg.ID = m.allocID()
	msg.CreatedAt = stamp(msg.CreatedAt)
	msg.UpdatedAt = msg.CreatedAt
	m.messages[msg.ID] = *msg
	return nil
}

func (m *MemoryStore) GetMessageByID(id uint) (*models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
	}
	return &msg, nil
}

func (m *MemoryStore) Edit(id, editorID uint, content string) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
	}
	if msg.SenderID != editorID {
		return nil, fmt.Errorf("user %d is not the sender of message %d: %w", editorID, id, apperr.ErrForbidden)
	}
	if msg.IsDeleted {
		return nil, fmt.Errorf("message %d is deleted: %w", id, apperr.ErrInvalidState)
	}
	msg.Content = content
	msg.IsEdited = true
	msg.UpdatedAt = time.Now()
	m.messages[id] = msg
	return &msg, nil
}

func (m *MemoryStore) Delete(id, actorID uint) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
	}
	if msg.SenderID != actorID {
		return nil, fmt.Errorf("user %d is not the sender of message %d: %w", actorID, id, apperr.ErrForbidden)
	}
	if msg.IsDeleted {
		return nil, fmt.Errorf("message %d is already deleted: %w", id, apperr.ErrInvalidState)
	}
	msg.IsDeleted = true
	msg.UpdatedAt = time.Now()
	m.messages[id] = msg
	return &msg, nil
}

func (m *MemoryStore) ToggleMessageLike(id, userID uint) (*models.LikeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d: %w", id, apperr.ErrNotFound)
	}
	if msg.SenderID != userID && msg.ReceiverID != userID {
		return nil, fmt.Errorf("user %d is not part of message %d's conversation: %w", userID, id, apperr.ErrForbidden)
	}
	count := func() int64 {
		var n int64
		for _, l := range m.messageLikes {
			if l.MessageID == id {
				n++
			}
		}
		return n
	}
	for lid, l := range m.messageLikes {
		if l.MessageID == id && l.UserID == userID {
			delete(m.messageLikes, lid)
			return &models.LikeState{Liked: false, Count: count()}, nil
		}
	}
	l := models.MessageLike{ID: m.allocID(), MessageID: id, UserID: userID, CreatedAt: time.Now()}
	m.messageLikes[l.ID] = l
	return &models.LikeState{Liked: true, Count: count()}, nil
}

func (m *MemoryStore) CountMessageLikes(id uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, l := range m.messageLikes {
		if l.MessageID == id {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) sortedMessages(filter func(models.Message) bool, newestFirst bool) []models.Message {
	var msgs []models.Message
	for _, msg := range m.messages {
		if filter(msg) {
			msgs = append(msgs, msg)
		}
	}
	sort.Slice(msgs, func(i, j int) bool {
		if newestFirst {
			return msgs[i].ID > msgs[j].ID
		}
		return msgs[i].ID < msgs[j].ID
	})
	return msgs
}

func (m *MemoryStore) ListBetween(userID, peerID uint, limit int) ([]models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.sortedMessages(func(msg models.Message) bool {
		return (msg.SenderID == userID && msg.ReceiverID == peerID) ||
			(msg.SenderID == peerID && msg.ReceiverID == userID)
	}, true)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	reverseMessages(msgs)
	return msgs, nil
}

func (m *MemoryStore) MarkConversationRead(userID, peerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, msg := range m.messages {
		if msg.ReceiverID == userID && msg.SenderID == peerID && !msg.IsRead {
			msg.IsRead = true
			m.messages[id] = msg
		}
	}
	return nil
}

func (m *MemoryStore) ListConversations(userID uint) ([]models.ConversationSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.sortedMessages(func(msg models.Message) bool {
		return msg.SenderID == userID || msg.ReceiverID == userID
	}, true)
	return deriveConversations(userID, msgs), nil
}

// --- NotificationRepository ---

func (m *MemoryStore) CreateNotification(notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	notification.ID = m.allocID()
	notification.CreatedAt = stamp(notification.CreatedAt)
	m.notifications[notification.ID] = *notification
	return nil
}

func (m *MemoryStore) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []models.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Notification{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *MemoryStore) GetUnreadCount(recipientID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, n := range m.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) MarkAsRead(notificationID, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[notificationID]
	if !ok {
		return fmt.Errorf("notification %d: %w", notificationID, apperr.ErrNotFound)
	}
	if n.RecipientID != userID {
		return fmt.Errorf("notification %d does not belong to user %d: %w", notificationID, userID, apperr.ErrForbidden)
	}
	n.IsRead = true
	m.notifications[notificationID] = n
	return nil
}

func (m *MemoryStore) MarkAllAsRead(recipientID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			m.notifications[id] = n
		}
	}
	return nil
}

// --- PostRepository ---

func (m *MemoryStore) CreatePost(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = m.allocID()
	post.CreatedAt = stamp(post.CreatedAt)
	post.UpdatedAt = post.CreatedAt
	m.posts[post.ID] = *post
	return nil
}

func (m *MemoryStore) GetPostByID(id uint) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryStore) listPostsLocked(filter func(models.Post) bool, page, limit int) ([]models.Post, int64) {
	var all []models.Post
	for _, p := range m.posts {
		if filter(p) {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Post{}, total
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total
}

func (m *MemoryStore) ListPosts(page, limit int) ([]models.Post, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	posts, total := m.listPostsLocked(func(models.Post) bool { return true }, page, limit)
	return posts, total, nil
}

func (m *MemoryStore) ListByAuthors(authorIDs []uint, page, limit int) ([]models.Post, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	allowed := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = true
	}
	posts, total := m.listPostsLocked(func(p models.Post) bool { return allowed[p.UserID] }, page, limit)
	return posts, total, nil
}

func (m *MemoryStore) DeletePost(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return fmt.Errorf("post %d: %w", id, apperr.ErrNotFound)
	}
	delete(m.posts, id)
	return nil
}

// --- ProjectRepository ---

func (m *MemoryStore) CreateProject(project *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project.ID = m.allocID()
	project.CreatedAt = stamp(project.CreatedAt)
	project.UpdatedAt = project.CreatedAt
	m.projects[project.ID] = *project
	return nil
}

func (m *MemoryStore) GetProjectByID(id uint) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, apperr.ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryStore) ListProjects(category string, page, limit int) ([]models.Project, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []models.Project
	for _, p := range m.projects {
		if category == "" || p.Category == category {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Project{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *MemoryStore) DeleteProject(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return fmt.Errorf("project %d: %w", id, apperr.ErrNotFound)
	}
	delete(m.projects, id)
	return nil
}

// --- JobRepository ---

func (m *MemoryStore) CreateJob(job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.ID = m.allocID()
	job.IsActive = true
	job.CreatedAt = stamp(job.CreatedAt)
	job.UpdatedAt = job.CreatedAt
	m.jobs[job.ID] = *job
	return nil
}

func (m *MemoryStore) GetJobByID(id uint) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %d: %w", id, apperr.ErrNotFound)
	}
	return &j, nil
}

func (m *MemoryStore) ListJobs(activeOnly bool, page, limit int) ([]models.Job, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []models.Job
	for _, j := range m.jobs {
		if !activeOnly || j.IsActive {
			all = append(all, j)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Job{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *MemoryStore) CloseJob(id, ownerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %d: %w", id, apperr.ErrNotFound)
	}
	if j.UserID != ownerID {
		return fmt.Errorf("user %d does not own job %d: %w", ownerID, id, apperr.ErrForbidden)
	}
	if !j.IsActive {
		return fmt.Errorf("job %d is already closed: %w", id, apperr.ErrInvalidState)
	}
	j.IsActive = false
	j.UpdatedAt = time.Now()
	m.jobs[id] = j
	return nil
}

func (m *MemoryStore) Apply(application *models.JobApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.applications {
		if a.JobID == application.JobID && a.UserID == application.UserID {
			return fmt.Errorf("user %d already applied to job %d: %w", application.UserID, application.JobID, apperr.ErrConflict)
		}
	}
	application.ID = m.allocID()
	application.CreatedAt = stamp(application.CreatedAt)
	m.applications[application.ID] = *application
	return nil
}

func (m *MemoryStore) GetApplication(jobID, userID uint) (*models.JobApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.applications {
		if a.JobID == jobID && a.UserID == userID {
			a := a
			return &a, nil
		}
	}
	return nil, fmt.Errorf("application for job %d by user %d: %w", jobID, userID, apperr.ErrNotFound)
}

// --- ResearchRepository ---

func (m *MemoryStore) CreateResearch(paper *models.ResearchPaper) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	paper.ID = m.allocID()
	paper.CreatedAt = stamp(paper.CreatedAt)
	paper.UpdatedAt = paper.CreatedAt
	m.research[paper.ID] = *paper
	return nil
}

func (m *MemoryStore) GetResearchByID(id uint) (*models.ResearchPaper, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.research[id]
	if !ok {
		return nil, fmt.Errorf("research paper %d: %w", id, apperr.ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryStore) ListResearch(field string, page, limit int) ([]models.ResearchPaper, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []models.ResearchPaper
	for _, p := range m.research {
		if field == "" || p.Field == field {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.ResearchPaper{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

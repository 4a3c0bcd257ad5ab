package models

import "time"

// BlockedUser is a directed block edge, independent of Follow. A block in
// either direction suppresses messaging and follow actions between the pair.
type BlockedUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ActorID   uint      `json:"actor_id" gorm:"index;uniqueIndex:idx_block_pair"`
	TargetID  uint      `json:"target_id" gorm:"index;uniqueIndex:idx_block_pair"`
	CreatedAt time.Time `json:"created_at"`
}

// MutedUser is a directed mute edge. Muting hides the target's posts from the
// actor's feed without affecting messaging or follows.
type MutedUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ActorID   uint      `json:"actor_id" gorm:"index;uniqueIndex:idx_mute_pair"`
	TargetID  uint      `json:"target_id" gorm:"index;uniqueIndex:idx_mute_pair"`
	CreatedAt time.Time `json:"created_at"`
}

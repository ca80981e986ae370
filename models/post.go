package models

import "time"

// Post represents a piece of writing published by a user. The author reference
// and creation timestamp are immutable after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
}

// EnrichedPost is the viewer-relative projection of a post: the author collapsed
// to a public profile, the raw author id masked, and ownership computed against
// the requesting viewer. Never persisted, recomputed per query.
type EnrichedPost struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	BodyHTML  string        `json:"body_html"`
	CreatedAt time.Time     `json:"created_at"`
	Author    PublicProfile `json:"author"`
	IsOwner   bool          `json:"is_owner"`
}

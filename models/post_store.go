package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"plume/utils"
)

// PostStore persists posts and serves every viewer-relative read through one
// shared enrichment projection.
type PostStore struct {
	db *gorm.DB
}

// NewPostStore creates a PostStore backed by the given database.
func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// GuestID is the viewer sentinel for unauthenticated requests. Row ids start
// at 1, so a guest can never match a post's author.
const GuestID uint = 0

// CleanPostInput strips all markup from a submitted title/body pair and trims
// surrounding whitespace. Stored content is always plain text.
func CleanPostInput(rawTitle, rawBody string) (title, body string) {
	return utils.SanitizeText(rawTitle), utils.SanitizeText(rawBody)
}

// ValidatePostInput checks cleaned input and accumulates every violation.
func ValidatePostInput(title, body string) ValidationErrors {
	var errs ValidationErrors
	if title == "" {
		errs = append(errs, "you must provide a title")
	}
	if body == "" {
		errs = append(errs, "you must provide post content")
	}
	return errs
}

// Create sanitizes and validates the submission, then inserts the post with a
// server-assigned timestamp and returns the new id.
func (s *PostStore) Create(rawTitle, rawBody string, authorID uint) (uint, error) {
	title, body := CleanPostInput(rawTitle, rawBody)
	if errs := ValidatePostInput(title, body); len(errs) > 0 {
		return 0, errs
	}

	post := Post{AuthorID: authorID, Title: title, Body: body}
	if err := s.db.Create(&post).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return post.ID, nil
}

// Update re-validates and re-sanitizes exactly as Create, but only after the
// viewer passes the ownership gate. Title and body are the only mutable
// fields; the update statement also constrains on author id so a row whose
// ownership somehow changed between the check and the write is left alone.
func (s *PostStore) Update(postID uint, rawTitle, rawBody string, viewerID uint) error {
	existing, err := s.FindEnriched(postID, viewerID)
	if err != nil {
		return err
	}
	if !existing.IsOwner {
		return ErrPermissionDenied
	}

	title, body := CleanPostInput(rawTitle, rawBody)
	if errs := ValidatePostInput(title, body); len(errs) > 0 {
		return errs
	}

	err = s.db.Model(&Post{}).
		Where("id = ? AND author_id = ?", postID, viewerID).
		Updates(map[string]interface{}{"title": title, "body": body}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Delete removes a post after the same ownership gate as Update.
func (s *PostStore) Delete(postID, viewerID uint) error {
	existing, err := s.FindEnriched(postID, viewerID)
	if err != nil {
		return err
	}
	if !existing.IsOwner {
		return ErrPermissionDenied
	}

	err = s.db.Where("id = ? AND author_id = ?", postID, viewerID).Delete(&Post{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// FindEnriched loads a single post projected against the viewer.
func (s *PostStore) FindEnriched(postID, viewerID uint) (*EnrichedPost, error) {
	if postID == 0 {
		return nil, ErrNotFound
	}
	var post Post
	err := s.db.Preload("Author").First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	enriched := enrich([]Post{post}, viewerID)
	return &enriched[0], nil
}

// FindByAuthor returns the author's posts, newest first, projected against the viewer.
func (s *PostStore) FindByAuthor(authorID, viewerID uint) ([]EnrichedPost, error) {
	var posts []Post
	err := s.db.Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return enrich(posts, viewerID), nil
}

// Search returns posts matching the term ranked by relevance: a title hit
// outweighs a body hit, ties break newest first. A blank term yields an empty
// result, never an error.
func (s *PostStore) Search(term string, viewerID uint) ([]EnrichedPost, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []EnrichedPost{}, nil
	}

	pattern := "%" + term + "%"
	var posts []Post
	err := s.db.Preload("Author").
		Select("posts.*, (CASE WHEN title LIKE ? THEN 2 ELSE 0 END) + (CASE WHEN body LIKE ? THEN 1 ELSE 0 END) AS relevance", pattern, pattern).
		Where("title LIKE ? OR body LIKE ?", pattern, pattern).
		Order("relevance DESC, created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return enrich(posts, viewerID), nil
}

// CountByAuthor returns the number of posts the author has published.
func (s *PostStore) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := s.db.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count, nil
}

// Feed returns the time-ordered union of posts from everyone the viewer
// follows. The followee set is read first and the post query is constrained to
// those author ids, so cost scales with followees plus matching posts rather
// than the whole posts table. An empty followee set is an empty feed.
func (s *PostStore) Feed(viewerID uint) ([]EnrichedPost, error) {
	var followedIDs []uint
	err := s.db.Model(&Follow{}).
		Where("follower_id = ?", viewerID).
		Pluck("followed_id", &followedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(followedIDs) == 0 {
		return []EnrichedPost{}, nil
	}

	var posts []Post
	err = s.db.Preload("Author").
		Where("author_id IN ?", followedIDs).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return enrich(posts, viewerID), nil
}

// enrich is the single projection step every multi-post read shares: join the
// author's public profile, compute ownership relative to the viewer, and mask
// the raw author id so callers cannot leak it.
func enrich(posts []Post, viewerID uint) []EnrichedPost {
	out := make([]EnrichedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, EnrichedPost{
			ID:        p.ID,
			Title:     p.Title,
			Body:      p.Body,
			BodyHTML:  utils.RenderUserHTML(p.Body),
			CreatedAt: p.CreatedAt,
			Author:    p.Author.Public(),
			IsOwner:   viewerID != GuestID && p.AuthorID == viewerID,
		})
	}
	return out
}

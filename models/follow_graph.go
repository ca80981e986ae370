package models

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowGraph persists directed follow edges and answers the counts, lists and
// membership questions the profile and feed paths depend on.
type FollowGraph struct {
	db    *gorm.DB
	users *UserStore
}

// NewFollowGraph creates a FollowGraph backed by the given database.
func NewFollowGraph(db *gorm.DB) *FollowGraph {
	return &FollowGraph{db: db, users: NewUserStore(db)}
}

// Follow records that the actor follows the target username. Following someone
// already followed is an idempotent no-op; following yourself is rejected.
func (g *FollowGraph) Follow(followerID uint, targetUsername string) error {
	target, err := g.users.FindByUsername(targetUsername)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return ValidationErrors{"you cannot follow yourself"}
	}

	edge := Follow{FollowerID: followerID, FollowedID: target.ID}
	err = g.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Unfollow removes the edge from the actor to the target username. Removing an
// edge that does not exist is a no-op.
func (g *FollowGraph) Unfollow(followerID uint, targetUsername string) error {
	target, err := g.users.FindByUsername(targetUsername)
	if err != nil {
		return err
	}

	err = g.db.Where("follower_id = ? AND followed_id = ?", followerID, target.ID).
		Delete(&Follow{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// IsFollowing reports whether the viewer follows the target. Guests never follow anyone.
func (g *FollowGraph) IsFollowing(targetID, viewerID uint) (bool, error) {
	if viewerID == GuestID {
		return false, nil
	}
	var count int64
	err := g.db.Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", viewerID, targetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count > 0, nil
}

// CountFollowers returns how many users follow the given user.
func (g *FollowGraph) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := g.db.Model(&Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count, nil
}

// CountFollowing returns how many users the given user follows.
func (g *FollowGraph) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := g.db.Model(&Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count, nil
}

// ListFollowers returns the public profiles of everyone following the user,
// most recent follower first.
func (g *FollowGraph) ListFollowers(userID uint) ([]PublicProfile, error) {
	return g.listEdgeProfiles("follows.follower_id = users.id", "follows.followed_id = ?", userID)
}

// ListFollowing returns the public profiles of everyone the user follows,
// most recently followed first.
func (g *FollowGraph) ListFollowing(userID uint) ([]PublicProfile, error) {
	return g.listEdgeProfiles("follows.followed_id = users.id", "follows.follower_id = ?", userID)
}

func (g *FollowGraph) listEdgeProfiles(joinOn, filter string, userID uint) ([]PublicProfile, error) {
	var users []User
	err := g.db.Model(&User{}).
		Joins("JOIN follows ON "+joinOn).
		Where(filter, userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	profiles := make([]PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return profiles, nil
}

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFollow(t *testing.T) {
	db := newTestDB(t)
	graph := NewFollowGraph(db)
	follower := seedUser(t, db, "janedoe")
	target := seedUser(t, db, "johndoe")

	t.Run("creates the edge", func(t *testing.T) {
		require.NoError(t, graph.Follow(follower.ID, "johndoe"))

		following, err := graph.IsFollowing(target.ID, follower.ID)
		require.NoError(t, err)
		require.True(t, following)
	})

	t.Run("following again is an idempotent no-op", func(t *testing.T) {
		require.NoError(t, graph.Follow(follower.ID, "johndoe"))

		count, err := graph.CountFollowers(target.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run("self-follow is rejected", func(t *testing.T) {
		err := graph.Follow(follower.ID, "janedoe")
		errs, ok := AsValidation(err)
		require.True(t, ok)
		require.Contains(t, errs, "you cannot follow yourself")
	})

	t.Run("unknown target", func(t *testing.T) {
		err := graph.Follow(follower.ID, "nobody")
		require.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestUnfollow(t *testing.T) {
	db := newTestDB(t)
	graph := NewFollowGraph(db)
	follower := seedUser(t, db, "janedoe")
	target := seedUser(t, db, "johndoe")

	require.NoError(t, graph.Follow(follower.ID, "johndoe"))
	require.NoError(t, graph.Unfollow(follower.ID, "johndoe"))

	following, err := graph.IsFollowing(target.ID, follower.ID)
	require.NoError(t, err)
	require.False(t, following)

	// Removing an edge that is not there stays quiet.
	require.NoError(t, graph.Unfollow(follower.ID, "johndoe"))

	err = graph.Unfollow(follower.ID, "nobody")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestIsFollowingGuest(t *testing.T) {
	db := newTestDB(t)
	graph := NewFollowGraph(db)
	target := seedUser(t, db, "johndoe")

	following, err := graph.IsFollowing(target.ID, GuestID)
	require.NoError(t, err)
	require.False(t, following)
}

func TestFollowCountsAndLists(t *testing.T) {
	db := newTestDB(t)
	graph := NewFollowGraph(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, graph.Follow(alice.ID, "carol"))
	require.NoError(t, graph.Follow(bob.ID, "carol"))
	require.NoError(t, graph.Follow(carol.ID, "alice"))

	// Pin bob's edge newest so the recency ordering is deterministic.
	require.NoError(t, db.Model(&Follow{}).
		Where("follower_id = ?", bob.ID).
		Update("created_at", time.Now().Add(time.Hour)).Error)

	count, err := graph.CountFollowers(carol.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = graph.CountFollowing(carol.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	followers, err := graph.ListFollowers(carol.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	require.Equal(t, "bob", followers[0].Username)
	require.Equal(t, "alice", followers[1].Username)

	following, err := graph.ListFollowing(carol.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, "alice", following[0].Username)
}

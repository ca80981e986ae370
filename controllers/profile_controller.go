package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"plume/middleware"
	"plume/models"
	"plume/utils"
)

// ProfileController serves public profiles and the follow actions on them.
type ProfileController struct {
	users *models.UserStore
	posts *models.PostStore
	graph *models.FollowGraph
}

// NewProfileController creates a new ProfileController instance.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{
		users: models.NewUserStore(db),
		posts: models.NewPostStore(db),
		graph: models.NewFollowGraph(db),
	}
}

// GetProfile returns the public profile with post/follower/following counts
// plus the viewer-relative isFollowing and isSelf flags.
func (pc *ProfileController) GetProfile(ctx *gin.Context) {
	user, ok := pc.resolveProfileUser(ctx)
	if !ok {
		return
	}
	viewerID := middleware.VisitorID(ctx)

	postCount, err := pc.posts.CountByAuthor(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "please try again later")
		return
	}
	followerCount, err := pc.graph.CountFollowers(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "please try again later")
		return
	}
	followingCount, err := pc.graph.CountFollowing(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "please try again later")
		return
	}
	isFollowing, err := pc.graph.IsFollowing(user.ID, viewerID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "please try again later")
		return
	}

	utils.Success(ctx, gin.H{
		"profile": user.Public(),
		"counts": gin.H{
			"posts":     postCount,
			"followers": followerCount,
			"following": followingCount,
		},
		"is_following": isFollowing,
		"is_self":      viewerID != models.GuestID && viewerID == user.ID,
	})
}

// ListProfilePosts returns the profile owner's posts, newest first. Guest
// responses are cached.
func (pc *ProfileController) ListProfilePosts(ctx *gin.Context) {
	user, ok := pc.resolveProfileUser(ctx)
	if !ok {
		return
	}
	viewerID := middleware.VisitorID(ctx)

	cacheKey := "cache:profile:" + user.Username + ":posts"
	if viewerID == models.GuestID {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	posts, err := pc.posts.FindByAuthor(user.ID, viewerID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "please try again later")
		return
	}

	payload := gin.H{"posts": posts}
	if viewerID == models.GuestID {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	}
	utils.Success(ctx, payload)
}

// ListFollowers returns the public profiles following this user.
func (pc *ProfileController) ListFollowers(ctx *gin.Context) {
	user, ok := pc.resolveProfileUser(ctx)
	if !ok {
		return
	}
	followers, err := pc.graph.ListFollowers(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"followers": followers})
}

// ListFollowing returns the public profiles this user follows.
func (pc *ProfileController) ListFollowing(ctx *gin.Context) {
	user, ok := pc.resolveProfileUser(ctx)
	if !ok {
		return
	}
	following, err := pc.graph.ListFollowing(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50046, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"following": following})
}

// FollowUser records the authenticated viewer following the profile owner.
func (pc *ProfileController) FollowUser(ctx *gin.Context) {
	err := pc.graph.Follow(middleware.VisitorID(ctx), ctx.Param("username"))
	if err != nil {
		if errs, ok := models.AsValidation(err); ok {
			utils.ValidationFailed(ctx, 40040, errs)
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50047, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"message": "followed"})
}

// UnfollowUser removes the viewer's follow edge to the profile owner.
func (pc *ProfileController) UnfollowUser(ctx *gin.Context) {
	err := pc.graph.Unfollow(middleware.VisitorID(ctx), ctx.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50048, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"message": "unfollowed"})
}

func (pc *ProfileController) resolveProfileUser(ctx *gin.Context) (*models.User, bool) {
	user, err := pc.users.FindByUsername(ctx.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40404, "user not found")
			return nil, false
		}
		utils.Error(ctx, http.StatusInternalServerError, 50049, "please try again later")
		return nil, false
	}
	return user, true
}

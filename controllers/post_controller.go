package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"plume/middleware"
	"plume/models"
	"plume/utils"
)

// PostController manages post CRUD, search and the follow feed.
type PostController struct {
	posts *models.PostStore
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{posts: models.NewPostStore(db)}
}

type postInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreatePost inserts a new post owned by the authenticated user. Works under
// both the session path and the Bearer token path.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	authorID := middleware.VisitorID(ctx)
	id, err := p.posts.Create(req.Title, req.Body, authorID)
	if err != nil {
		if errs, ok := models.AsValidation(err); ok {
			utils.ValidationFailed(ctx, 40021, errs)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50020, "please try again later")
		return
	}

	p.invalidateCaches(ctx, id)
	utils.Success(ctx, gin.H{"id": id})
}

// GetPost returns a single enriched post. Guest responses are cached.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := parsePostID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	viewerID := middleware.VisitorID(ctx)

	cacheKey := "cache:post:detail:" + strconv.FormatUint(uint64(postID), 10)
	if viewerID == models.GuestID {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	post, err := p.posts.FindEnriched(postID, viewerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "please try again later")
		return
	}

	payload := gin.H{"post": post}
	if viewerID == models.GuestID {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	}
	utils.Success(ctx, payload)
}

// UpdatePost applies a title/body edit after the ownership gate. A missing
// post and someone else's post get the same answer so existence never leaks.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req postInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	postID, ok := parsePostID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusForbidden, 40301, "you do not have permission to perform that action")
		return
	}

	err := p.posts.Update(postID, req.Title, req.Body, middleware.VisitorID(ctx))
	if err != nil {
		if errs, ok := models.AsValidation(err); ok {
			utils.ValidationFailed(ctx, 40023, errs)
			return
		}
		if errors.Is(err, models.ErrPermissionDenied) || errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusForbidden, 40301, "you do not have permission to perform that action")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "please try again later")
		return
	}

	p.invalidateCaches(ctx, postID)
	utils.Success(ctx, gin.H{"message": "post updated"})
}

// DeletePost removes a post after the same gate as UpdatePost.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := parsePostID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusForbidden, 40302, "you do not have permission to perform that action")
		return
	}

	err := p.posts.Delete(postID, middleware.VisitorID(ctx))
	if err != nil {
		if errors.Is(err, models.ErrPermissionDenied) || errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusForbidden, 40302, "you do not have permission to perform that action")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "please try again later")
		return
	}

	p.invalidateCaches(ctx, postID)
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// Search returns relevance-ranked matches. It fails closed: anything that goes
// wrong yields an empty list, never an error to the UI.
func (p *PostController) Search(ctx *gin.Context) {
	var req struct {
		Term string `json:"term"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Success(ctx, gin.H{"posts": []models.EnrichedPost{}})
		return
	}

	posts, err := p.posts.Search(req.Term, middleware.VisitorID(ctx))
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("search failed term=%q err=%v", req.Term, err)
		}
		posts = []models.EnrichedPost{}
	}
	utils.Success(ctx, gin.H{"posts": posts})
}

// Feed returns the authenticated user's follow feed, newest first.
func (p *PostController) Feed(ctx *gin.Context) {
	viewerID := middleware.VisitorID(ctx)
	posts, err := p.posts.Feed(viewerID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"posts": posts})
}

func (p *PostController) invalidateCaches(ctx *gin.Context, postID uint) {
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))
	if username, exists := ctx.Get(middleware.ContextUsernameKey); exists {
		if name, ok := username.(string); ok && name != "" {
			utils.InvalidateByPrefix("cache:profile:" + name + ":posts")
		}
	}
}

func parsePostID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

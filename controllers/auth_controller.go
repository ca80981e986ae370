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

// AuthController handles registration, session login/logout and the token
// exchange for the API surface.
type AuthController struct {
	users *models.UserStore
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{users: models.NewUserStore(db)}
}

// Register creates an account and logs the new user straight in.
func (a *AuthController) Register(ctx *gin.Context) {
	var req models.RegistrationInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	user, err := a.users.Register(req)
	if err != nil {
		if errs, ok := models.AsValidation(err); ok {
			utils.ValidationFailed(ctx, 40011, errs)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50010, "please try again later")
		return
	}

	a.startSession(ctx, user)
}

// Login authenticates credentials and opens a session.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}

	user, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid username or password")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50011, "please try again later")
		return
	}

	a.startSession(ctx, user)
}

// Logout destroys the server-side session and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if cookie, err := ctx.Request.Cookie(utils.SessionCookieName); err == nil {
		utils.DestroySession(cookie.Value)
	}
	ctx.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the session user's public summary.
func (a *AuthController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "not logged in")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// UsernameExists answers the live registration check for a taken username.
func (a *AuthController) UsernameExists(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid request payload")
		return
	}
	exists, err := a.users.UsernameExists(req.Username)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"exists": exists})
}

// EmailExists answers the live registration check for an email already in use.
func (a *AuthController) EmailExists(ctx *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "invalid request payload")
		return
	}
	exists, err := a.users.EmailExists(req.Email)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"exists": exists})
}

// IssueToken exchanges credentials for a Bearer token usable on the API surface.
func (a *AuthController) IssueToken(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40015, "invalid request payload")
		return
	}

	user, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			utils.Error(ctx, http.StatusUnauthorized, 40112, "invalid username or password")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50014, "please try again later")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, 7*24*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "please try again later")
		return
	}
	utils.Success(ctx, gin.H{"token": token})
}

func (a *AuthController) startSession(ctx *gin.Context, user *models.User) {
	summary := utils.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.AvatarURL(),
	}
	token, err := utils.CreateSession(summary)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50016, "please try again later")
		return
	}
	ctx.SetCookie(utils.SessionCookieName, token, utils.SessionCookieMaxAge(), "/", "", false, true)
	utils.Success(ctx, gin.H{"user": summary})
}

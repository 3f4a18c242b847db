package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"tasktrack/internal/apperr"
	"tasktrack/internal/auth"
	"tasktrack/internal/models"
	"tasktrack/internal/validate"
	"tasktrack/pkg/logger"
)

// Both login failure modes show the same message so the form does not leak
// which usernames exist.
const loginFailedMsg = "invalid username or password"

// ShowLogin renders the login form, skipping straight home for a live session.
func (ct *Controller) ShowLogin(c *gin.Context) {
	if _, ok := ct.sessions.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login authenticates the submitted credentials and establishes a session.
func (ct *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := ct.users.GetByUsername(ctx, username)
	if errors.Is(err, apperr.ErrUserNotFound) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": loginFailedMsg})
		return
	}
	if err != nil {
		ct.fail(c, err)
		return
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": loginFailedMsg})
		return
	}
	if err := ct.sessions.Establish(c, user.ID); err != nil {
		ct.fail(c, err)
		return
	}
	logger.Info(ctx, "User logged in", "user_id", user.ID)
	c.Redirect(http.StatusFound, "/")
}

// ShowSignup renders the signup form, skipping straight home for a live
// session.
func (ct *Controller) ShowSignup(c *gin.Context) {
	if _, ok := ct.sessions.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// Signup registers a new user. Checks run in priority order: duplicate
// username, username format, password strength, confirmation match; the
// first failure wins and nothing is written.
func (ct *Controller) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if _, err := ct.users.GetByUsername(ctx, username); err == nil {
		c.HTML(http.StatusConflict, "signup.html", gin.H{"Error": apperr.ErrDuplicateUser.Error()})
		return
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		ct.fail(c, err)
		return
	}
	if !validate.Username(username) {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": apperr.ErrInvalidUsername.Error()})
		return
	}
	if !validate.Password(password) {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": apperr.ErrInvalidPassword.Error()})
		return
	}
	if password != confirm {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": apperr.ErrPasswordMismatch.Error()})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		ct.fail(c, err)
		return
	}
	user := &models.User{Username: username, PasswordHash: hash}
	if err := ct.users.Create(ctx, user); err != nil {
		// Two signups can pass the pre-check and race on the unique index.
		if errors.Is(err, apperr.ErrDuplicateUser) {
			c.HTML(http.StatusConflict, "signup.html", gin.H{"Error": apperr.ErrDuplicateUser.Error()})
			return
		}
		ct.fail(c, err)
		return
	}
	logger.Info(ctx, "User registered", "user_id", user.ID, "username", username)
	c.Redirect(http.StatusFound, "/login")
}

// Logout clears the session and returns to the login page. Idempotent.
func (ct *Controller) Logout(c *gin.Context) {
	ct.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}

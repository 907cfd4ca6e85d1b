package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/CUknot/forum_backend/database"
	"github.com/CUknot/forum_backend/middleware"
	"github.com/CUknot/forum_backend/models"
	"github.com/CUknot/forum_backend/utils"
	"github.com/gin-gonic/gin"
)

const msgInvalidLogin = "Invalid login credentials"

type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required" example:"alice"`
	Password string `form:"password" json:"password" binding:"required" example:"s3cret-pass"`
}

type RegisterForm struct {
	Username  string `form:"username" json:"username" binding:"required,max=150,username" example:"alice"`
	Password1 string `form:"password1" json:"password1" binding:"required,min=8,max=128" example:"s3cret-pass"`
	Password2 string `form:"password2" json:"password2" binding:"required,eqfield=Password1" example:"s3cret-pass"`
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// checkDummyPassword spends the same bcrypt work as a real comparison so an
// unknown username takes as long to reject as a wrong password.
func checkDummyPassword(password string) {
	dummyHashOnce.Do(func() {
		h, err := models.HashPassword("not-a-real-password")
		if err != nil {
			log.Printf("Failed to build dummy password hash: %v", err)
		}
		dummyHash = h
	})
	u := models.User{Password: dummyHash}
	_ = u.ValidatePassword(password)
}

// LoginPage godoc
// @Summary Login page
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "page, messages"
// @Success 302 "Already logged in"
// @Router /login/ [get]
func (ctl *Controller) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "login", "next": c.Query("next"), "messages": ctl.popFlash(c)})
}

// Login godoc
// @Summary Log in
// @Description Usernames are case-insensitive. Every failure gets the same message.
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param credentials body LoginForm true "Credentials"
// @Param next query string false "Where to go after logging in"
// @Success 302 "Session cookie set"
// @Failure 401 {object} map[string]string "Invalid login credentials"
// @Router /login/ [post]
func (ctl *Controller) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"page": "login", "error": msgInvalidLogin})
		return
	}

	username := strings.ToLower(strings.TrimSpace(form.Username))
	user, err := ctl.Store.UserByUsername(c.Request.Context(), username)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Printf("Login lookup failed: %v", err)
		}
		checkDummyPassword(form.Password)
		c.JSON(http.StatusUnauthorized, gin.H{"page": "login", "error": msgInvalidLogin})
		return
	}
	if err := user.ValidatePassword(form.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"page": "login", "error": msgInvalidLogin})
		return
	}

	if err := ctl.Auth.Login(c, user); err != nil {
		log.Printf("Failed to start session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}
	c.Redirect(http.StatusFound, safeNext(next))
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Success 302 "Session ended"
// @Router /logout/ [get]
func (ctl *Controller) Logout(c *gin.Context) {
	if err := ctl.Auth.Logout(c); err != nil {
		log.Printf("Failed to end session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// RegisterPage godoc
// @Summary Registration page
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "page, messages"
// @Router /register/ [get]
func (ctl *Controller) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register", "messages": ctl.popFlash(c)})
}

// Register godoc
// @Summary Register
// @Description Creates an account with a lowercased username and logs it in. Errors are flashed on the registration page.
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Param account body RegisterForm true "Account"
// @Success 302 "Registered and logged in, or back to /register/ with a flash message"
// @Router /register/ [post]
func (ctl *Controller) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		ctl.flash(c, utils.ValidationErrors(err).First())
		c.Redirect(http.StatusFound, "/register/")
		return
	}

	user := models.User{
		Username: strings.ToLower(form.Username),
		Password: form.Password1,
	}
	if err := ctl.Store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			ctl.flash(c, "A user with that username already exists.")
		} else {
			log.Printf("Failed to register user: %v", err)
			ctl.flash(c, "An error occurred during registration")
		}
		c.Redirect(http.StatusFound, "/register/")
		return
	}

	if err := ctl.Auth.Login(c, &user); err != nil {
		log.Printf("Failed to start session: %v", err)
		c.Redirect(http.StatusFound, "/login/")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

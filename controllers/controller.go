package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/CUknot/forum_backend/database"
	"github.com/CUknot/forum_backend/middleware"
	"github.com/CUknot/forum_backend/models"
	"github.com/CUknot/forum_backend/utils"
	"github.com/gin-gonic/gin"
)

// RoomFeed pushes room events to live subscribers.
type RoomFeed interface {
	BroadcastToRoom(roomID uint, eventType string, payload interface{})
	Serve(c *gin.Context, roomID, userID uint)
}

// Controller holds the dependencies every handler needs.
type Controller struct {
	Store *database.Store
	Auth  *middleware.Auth
	Feed  RoomFeed
}

// New creates a controller.
func New(store *database.Store, auth *middleware.Auth, feed RoomFeed) *Controller {
	return &Controller{Store: store, Auth: auth, Feed: feed}
}

const msgNotAllowed = "You are not allowed here"

// flash and popFlash keep the flash cookie's Secure flag in step with the
// session cookie.
func (ctl *Controller) flash(c *gin.Context, message string) {
	utils.SetFlash(c, message, ctl.secureCookies())
}

func (ctl *Controller) popFlash(c *gin.Context) []string {
	return utils.PopFlash(c, ctl.secureCookies())
}

func (ctl *Controller) secureCookies() bool {
	return ctl.Auth != nil && ctl.Auth.Secure
}

func (ctl *Controller) broadcast(roomID uint, eventType string, payload interface{}) {
	if ctl.Feed != nil {
		ctl.Feed.BroadcastToRoom(roomID, eventType, payload)
	}
}

// pathID parses the :id path parameter. Anything that is not a positive
// integer cannot name a record, so it is answered as not found.
func pathID(c *gin.Context, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return 0, false
	}
	return uint(id), true
}

// storeError answers a failed store call: not found becomes 404, anything
// else is logged and reported as 500.
func storeError(c *gin.Context, err error, what, action string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	log.Printf("%s: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}

// requester returns the logged-in user or redirects to the login page.
func requester(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.RedirectToLogin(c)
		return nil, false
	}
	return user, true
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": msgNotAllowed})
}

func roomURL(id uint) string {
	return fmt.Sprintf("/room/%d/", id)
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Profile godoc
// @Summary User profile
// @Description Rooms hosted by the user, the user's messages and all topics
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{} "user, rooms, room_messages, topics"
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile/{id}/ [get]
func (ctl *Controller) Profile(c *gin.Context) {
	id, ok := pathID(c, "User")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := ctl.Store.UserByID(ctx, id)
	if err != nil {
		storeError(c, err, "User", "fetch user")
		return
	}
	rooms, err := ctl.Store.RoomsForUser(ctx, id)
	if err != nil {
		storeError(c, err, "User", "fetch rooms")
		return
	}
	messages, err := ctl.Store.MessagesForUser(ctx, id)
	if err != nil {
		storeError(c, err, "User", "fetch messages")
		return
	}
	topics, err := ctl.Store.Topics(ctx)
	if err != nil {
		storeError(c, err, "topics", "fetch topics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"rooms":         rooms,
		"room_messages": messages,
		"topics":        topics,
	})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "ok"
// @Failure 503 {object} map[string]string "Database unreachable"
// @Router /healthz [get]
func (ctl *Controller) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := ctl.Store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/CUknot/forum_backend/models"
	"github.com/CUknot/forum_backend/utils"
	"github.com/CUknot/forum_backend/websocket"
	"github.com/gin-gonic/gin"
)

type MessageForm struct {
	Body string `form:"body" json:"body" binding:"required,notblank,max=10000" example:"Hello, everyone!"`
}

// PostMessage godoc
// @Summary Post a message in a room
// @Description Creates a message as the requester and adds them to the room's participants
// @Tags messages
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Room ID"
// @Param message body MessageForm true "Message"
// @Success 302 "Redirect back to the room, or to /login/?next= for anonymous callers"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /room/{id}/ [post]
func (ctl *Controller) PostMessage(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Room")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := ctl.Store.RoomByID(ctx, id); err != nil {
		storeError(c, err, "Room", "fetch room")
		return
	}

	var form MessageForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ValidationErrors(err)})
		return
	}

	message := models.Message{
		Body:   strings.TrimSpace(form.Body),
		RoomID: id,
		UserID: user.ID,
	}
	if err := ctl.Store.CreateMessage(ctx, &message); err != nil {
		storeError(c, err, "Room", "create message")
		return
	}
	message.User = *user

	ctl.broadcast(id, websocket.EventMessageCreated, message)
	c.Redirect(http.StatusFound, roomURL(id))
}

// loadOwnMessage fetches the message named in the path and checks that the
// requester wrote it.
func (ctl *Controller) loadOwnMessage(c *gin.Context) (*models.Message, bool) {
	user, ok := requester(c)
	if !ok {
		return nil, false
	}
	id, ok := pathID(c, "Message")
	if !ok {
		return nil, false
	}
	message, err := ctl.Store.MessageByID(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "Message", "fetch message")
		return nil, false
	}
	if message.UserID != user.ID {
		forbidden(c)
		return nil, false
	}
	return message, true
}

// DeleteMessageConfirm godoc
// @Summary Message deletion prompt
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]interface{} "obj"
// @Failure 302 "Anonymous callers are redirected to /login/?next="
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Message not found"
// @Router /delete-message/{id}/ [get]
func (ctl *Controller) DeleteMessageConfirm(c *gin.Context) {
	message, ok := ctl.loadOwnMessage(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"obj": message})
}

// DeleteMessage godoc
// @Summary Delete a message
// @Description Only the author may delete a message
// @Tags messages
// @Param id path int true "Message ID"
// @Success 302 "Redirect to the message's room, or to /login/?next= for anonymous callers"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Message not found"
// @Router /delete-message/{id}/ [post]
func (ctl *Controller) DeleteMessage(c *gin.Context) {
	message, ok := ctl.loadOwnMessage(c)
	if !ok {
		return
	}

	if err := ctl.Store.DeleteMessage(c.Request.Context(), message.ID); err != nil {
		storeError(c, err, "Message", "delete message")
		return
	}

	ctl.broadcast(message.RoomID, websocket.EventMessageDeleted, gin.H{"id": message.ID})
	c.Redirect(http.StatusFound, roomURL(message.RoomID))
}

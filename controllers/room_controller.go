package controllers

import (
	"net/http"
	"strings"

	"github.com/CUknot/forum_backend/middleware"
	"github.com/CUknot/forum_backend/models"
	"github.com/CUknot/forum_backend/utils"
	"github.com/CUknot/forum_backend/websocket"
	"github.com/gin-gonic/gin"
)

// RoomForm is the editable part of a room. Host and participants are set by
// the server and have no field here.
type RoomForm struct {
	Name        string `form:"name" json:"name" binding:"required,notblank,max=200" example:"Chess Club"`
	Topic       string `form:"topic" json:"topic" binding:"required,notblank,max=200" example:"Games"`
	Description string `form:"description" json:"description" binding:"max=5000" example:"Weekly blitz games"`
}

func roomFormFrom(room *models.Room) RoomForm {
	return RoomForm{Name: room.Name, Topic: room.Topic.Name, Description: room.Description}
}

// apply resolves the topic label and copies the form onto room.
func (ctl *Controller) apply(c *gin.Context, form RoomForm, room *models.Room) error {
	topic, err := ctl.Store.GetOrCreateTopic(c.Request.Context(), strings.TrimSpace(form.Topic))
	if err != nil {
		return err
	}
	room.Name = strings.TrimSpace(form.Name)
	room.Description = strings.TrimSpace(form.Description)
	room.TopicID = topic.ID
	room.Topic = *topic
	return nil
}

func (ctl *Controller) renderRoomForm(c *gin.Context, status int, form RoomForm, extra gin.H) {
	topics, err := ctl.Store.Topics(c.Request.Context())
	if err != nil {
		storeError(c, err, "topics", "fetch topics")
		return
	}
	body := gin.H{"form": form, "topics": topics}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// ListRooms godoc
// @Summary List rooms
// @Description Rooms whose topic, name, description or host username contains q (case-insensitive), with all topics and the matching recent activity
// @Tags rooms
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} map[string]interface{} "rooms, room_count, topics, room_messages"
// @Failure 500 {object} map[string]string "Server error"
// @Router / [get]
func (ctl *Controller) ListRooms(c *gin.Context) {
	ctx := c.Request.Context()
	q := c.Query("q")

	rooms, err := ctl.Store.SearchRooms(ctx, q)
	if err != nil {
		storeError(c, err, "rooms", "fetch rooms")
		return
	}
	topics, err := ctl.Store.Topics(ctx)
	if err != nil {
		storeError(c, err, "topics", "fetch topics")
		return
	}
	activity, err := ctl.Store.MessagesForTopicQuery(ctx, q)
	if err != nil {
		storeError(c, err, "messages", "fetch messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"q":             q,
		"rooms":         rooms,
		"room_count":    len(rooms),
		"topics":        topics,
		"room_messages": activity,
		"messages":      ctl.popFlash(c),
	})
}

// ViewRoom godoc
// @Summary Get a room
// @Description Returns a room, its messages (newest first) and its participants
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} map[string]interface{} "room, room_messages, participants"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /room/{id}/ [get]
func (ctl *Controller) ViewRoom(c *gin.Context) {
	id, ok := pathID(c, "Room")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	room, err := ctl.Store.RoomByID(ctx, id)
	if err != nil {
		storeError(c, err, "Room", "fetch room")
		return
	}
	messages, err := ctl.Store.MessagesForRoom(ctx, id)
	if err != nil {
		storeError(c, err, "Room", "fetch messages")
		return
	}
	participants, err := ctl.Store.ParticipantsForRoom(ctx, id)
	if err != nil {
		storeError(c, err, "Room", "fetch participants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":          room,
		"room_messages": messages,
		"participants":  participants,
	})
}

// CreateRoomForm godoc
// @Summary Room creation form
// @Tags rooms
// @Produce json
// @Success 200 {object} map[string]interface{} "form, topics"
// @Failure 302 "Anonymous callers are redirected to /login/?next="
// @Router /create-room/ [get]
func (ctl *Controller) CreateRoomForm(c *gin.Context) {
	ctl.renderRoomForm(c, http.StatusOK, RoomForm{}, nil)
}

// CreateRoom godoc
// @Summary Create a room
// @Description Creates a room hosted by the requester. The topic is created if it does not exist yet.
// @Tags rooms
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param room body RoomForm true "Room"
// @Success 302 "Redirect to the room list, or to /login/?next= for anonymous callers"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Router /create-room/ [post]
func (ctl *Controller) CreateRoom(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}

	var form RoomForm
	if err := c.ShouldBind(&form); err != nil {
		ctl.renderRoomForm(c, http.StatusBadRequest, form, gin.H{"errors": utils.ValidationErrors(err)})
		return
	}

	room := models.Room{HostID: user.ID}
	if err := ctl.apply(c, form, &room); err != nil {
		storeError(c, err, "Topic", "resolve topic")
		return
	}
	if err := ctl.Store.CreateRoom(c.Request.Context(), &room); err != nil {
		storeError(c, err, "Topic", "create room")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// loadHostedRoom fetches the room named in the path and checks that the
// requester hosts it.
func (ctl *Controller) loadHostedRoom(c *gin.Context) (*models.Room, bool) {
	user, ok := requester(c)
	if !ok {
		return nil, false
	}
	id, ok := pathID(c, "Room")
	if !ok {
		return nil, false
	}
	room, err := ctl.Store.RoomByID(c.Request.Context(), id)
	if err != nil {
		storeError(c, err, "Room", "fetch room")
		return nil, false
	}
	if room.HostID != user.ID {
		forbidden(c)
		return nil, false
	}
	return room, true
}

// UpdateRoomForm godoc
// @Summary Room edit form
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} map[string]interface{} "form prefilled from the room, topics, room"
// @Failure 302 "Anonymous callers are redirected to /login/?next="
// @Failure 403 {object} map[string]string "Not the host"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /update-room/{id}/ [get]
func (ctl *Controller) UpdateRoomForm(c *gin.Context) {
	room, ok := ctl.loadHostedRoom(c)
	if !ok {
		return
	}
	ctl.renderRoomForm(c, http.StatusOK, roomFormFrom(room), gin.H{"room": room})
}

// UpdateRoom godoc
// @Summary Update a room
// @Description Only the host may edit a room. Host and participants cannot be changed.
// @Tags rooms
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Room ID"
// @Param room body RoomForm true "Room"
// @Success 302 "Redirect to the room list, or to /login/?next= for anonymous callers"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 403 {object} map[string]string "Not the host"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /update-room/{id}/ [post]
func (ctl *Controller) UpdateRoom(c *gin.Context) {
	room, ok := ctl.loadHostedRoom(c)
	if !ok {
		return
	}

	var form RoomForm
	if err := c.ShouldBind(&form); err != nil {
		ctl.renderRoomForm(c, http.StatusBadRequest, form, gin.H{"errors": utils.ValidationErrors(err), "room": room})
		return
	}

	if err := ctl.apply(c, form, room); err != nil {
		storeError(c, err, "Topic", "resolve topic")
		return
	}
	if err := ctl.Store.UpdateRoom(c.Request.Context(), room); err != nil {
		storeError(c, err, "Room", "update room")
		return
	}

	ctl.broadcast(room.ID, websocket.EventRoomUpdated, room)
	c.Redirect(http.StatusFound, "/")
}

// DeleteRoomConfirm godoc
// @Summary Room deletion prompt
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} map[string]interface{} "obj"
// @Failure 302 "Anonymous callers are redirected to /login/?next="
// @Failure 403 {object} map[string]string "Not the host"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /delete-room/{id}/ [get]
func (ctl *Controller) DeleteRoomConfirm(c *gin.Context) {
	room, ok := ctl.loadHostedRoom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"obj": room})
}

// DeleteRoom godoc
// @Summary Delete a room
// @Description Deletes a room with its messages. Only the host may do this.
// @Tags rooms
// @Param id path int true "Room ID"
// @Success 302 "Redirect to the room list, or to /login/?next= for anonymous callers"
// @Failure 403 {object} map[string]string "Not the host"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /delete-room/{id}/ [post]
func (ctl *Controller) DeleteRoom(c *gin.Context) {
	room, ok := ctl.loadHostedRoom(c)
	if !ok {
		return
	}

	if err := ctl.Store.DeleteRoom(c.Request.Context(), room.ID); err != nil {
		storeError(c, err, "Room", "delete room")
		return
	}

	ctl.broadcast(room.ID, websocket.EventRoomDeleted, gin.H{"id": room.ID})
	c.Redirect(http.StatusFound, "/")
}

// RoomFeed godoc
// @Summary Live room feed
// @Description Websocket stream of message_created, message_deleted, room_updated and room_deleted events
// @Tags rooms
// @Param id path int true "Room ID"
// @Success 101 "Switching protocols"
// @Failure 404 {object} map[string]string "Room not found"
// @Router /ws/room/{id}/ [get]
func (ctl *Controller) RoomFeed(c *gin.Context) {
	id, ok := pathID(c, "Room")
	if !ok {
		return
	}
	if _, err := ctl.Store.RoomByID(c.Request.Context(), id); err != nil {
		storeError(c, err, "Room", "fetch room")
		return
	}

	var userID uint
	if user, ok := middleware.CurrentUser(c); ok {
		userID = user.ID
	}
	ctl.Feed.Serve(c, id, userID)
}

package controllers

import (
	"github.com/CUknot/forum_backend/middleware"
	"github.com/gin-gonic/gin"
)

// Routes mounts every forum endpoint on r. Auth.LoadSession must already be
// in the chain so handlers can see the current user.
func (ctl *Controller) Routes(r gin.IRouter) {
	loginRequired := middleware.RequireAuth()

	r.GET("/", ctl.ListRooms)
	r.GET("/healthz", ctl.Health)

	r.GET("/login/", ctl.LoginPage)
	r.POST("/login/", ctl.Login)
	r.GET("/logout/", ctl.Logout)
	r.GET("/register/", ctl.RegisterPage)
	r.POST("/register/", ctl.Register)

	r.GET("/profile/:id/", ctl.Profile)

	r.GET("/room/:id/", ctl.ViewRoom)
	r.POST("/room/:id/", loginRequired, ctl.PostMessage)

	r.GET("/create-room/", loginRequired, ctl.CreateRoomForm)
	r.POST("/create-room/", loginRequired, ctl.CreateRoom)
	r.GET("/update-room/:id/", loginRequired, ctl.UpdateRoomForm)
	r.POST("/update-room/:id/", loginRequired, ctl.UpdateRoom)
	r.GET("/delete-room/:id/", loginRequired, ctl.DeleteRoomConfirm)
	r.POST("/delete-room/:id/", loginRequired, ctl.DeleteRoom)

	r.GET("/delete-message/:id/", loginRequired, ctl.DeleteMessageConfirm)
	r.POST("/delete-message/:id/", loginRequired, ctl.DeleteMessage)

	r.GET("/ws/room/:id/", ctl.RoomFeed)
}

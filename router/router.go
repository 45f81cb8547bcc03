package router

import (
	"github.com/gin-gonic/gin"

	"go-splendor/controller"
	"go-splendor/middleware"
	"go-splendor/service"
	"go-splendor/utils"
	"go-splendor/ws"
)

type Deps struct {
	Rooms  *service.RoomService
	Tokens *utils.TokenIssuer
	Hub    *ws.Hub
}

func InitRouter(r *gin.Engine, deps Deps) {
	auth := controller.NewAuthController(deps.Tokens)
	rooms := controller.NewRoomController(deps.Rooms)

	r.GET("/health", controller.Health(deps.Rooms))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.Guest)
		authGroup.POST("/refresh", auth.Refresh)
	}

	api := r.Group("/room", middleware.AuthMiddleware(deps.Tokens))
	{
		api.POST("/create", rooms.CreateRoom)
		api.GET("/list", rooms.GetRoomList)
		api.GET("/:roomID", rooms.GetRoomInfo)
		api.POST("/:roomID/join", rooms.JoinRoom)
		api.POST("/:roomID/start", rooms.StartGame)
		api.POST("/:roomID/restart", rooms.RestartGame)
		api.POST("/:roomID/action", rooms.PerformAction)
		api.DELETE("/:roomID", rooms.DeleteRoom)
	}

	// the socket authenticates with a token query parameter
	r.GET("/ws", deps.Hub.HandleWebSocket)
}

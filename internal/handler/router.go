package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"billtrack/internal/middleware"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Users         *UserHandler
	Bills         *BillHandler
	Authenticator middleware.Authenticator
	LoginWindow   time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/login", middleware.RateLimit(deps.LoginWindow), deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.TokenAuth(deps.Authenticator))
	authGroup.POST("/logout", deps.Auth.Logout)

	authGroup.GET("/profile", deps.Profile.Show)
	authGroup.PUT("/profile", deps.Profile.Update)
	authGroup.PUT("/profile-password", deps.Profile.UpdatePassword)

	authGroup.GET("/users", deps.Users.List)
	authGroup.GET("/users/:id", deps.Users.Show)
	authGroup.POST("/users", deps.Users.Create)
	authGroup.PUT("/users/:id", deps.Users.Update)
	authGroup.PUT("/users-password/:id", deps.Users.UpdatePassword)
	authGroup.DELETE("/users/:id", deps.Users.Delete)

	authGroup.GET("/bills", deps.Bills.List)
	authGroup.GET("/bills/:id", deps.Bills.Show)
	authGroup.POST("/bills", deps.Bills.Create)
	authGroup.PUT("/bills/:id", deps.Bills.Update)
	authGroup.DELETE("/bills/:id", deps.Bills.Delete)
}

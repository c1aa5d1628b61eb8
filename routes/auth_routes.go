package routes

import (
	"github.com/gin-gonic/gin"
	"krishi-market/controllers"
)

func SetupAuthRoutes(r *gin.Engine, uc *controllers.UserController) {
	r.POST("/register", uc.Register)
	r.POST("/login", uc.Login)
}

func SetupUserRoutes(r *gin.Engine, uc *controllers.UserController) {
	r.PUT("/update-profile", uc.UpdateProfile)
	r.GET("/user/:id", uc.GetUserProfile)
}

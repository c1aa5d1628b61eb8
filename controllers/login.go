package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"krishi-market/models"
	"krishi-market/repository"
)

// Login answers an unknown email and a wrong password identically.
func (uc *UserController) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := uc.users.FindByEmail(c.Request.Context(), input.Email)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		uc.internalError(c, "Failed to look up user", err)
		return
	}

	if !uc.hasher.Verify(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	uc.log.Info("User logged in", zap.String("user_id", user.ID.Hex()))
	c.JSON(http.StatusOK, user)
}

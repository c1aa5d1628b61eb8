package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"krishi-market/repository"
	"krishi-market/services"
)

// PasswordHasher is satisfied by *utils.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// UserController serves the account endpoints. Every field is injected by
// main; no package-level state is used.
type UserController struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	profiles *services.ProfileService
	log      *zap.Logger
}

func NewUserController(users repository.UserRepository, hasher PasswordHasher, profiles *services.ProfileService, log *zap.Logger) *UserController {
	return &UserController{users: users, hasher: hasher, profiles: profiles, log: log}
}

// internalError logs the cause and hides it from the client.
func (uc *UserController) internalError(c *gin.Context, msg string, err error) {
	uc.log.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

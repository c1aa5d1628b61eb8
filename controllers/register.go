package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"krishi-market/models"
	"krishi-market/repository"
	"krishi-market/utils"
)

func (uc *UserController) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := utils.ValidateRegistration(input); len(errs) > 0 {
		uc.log.Info("Registration rejected", zap.Strings("fields", sortedKeys(errs)))
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	ctx := c.Request.Context()

	_, err := uc.users.FindByEmail(ctx, input.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		uc.internalError(c, "Failed to check existing email", err)
		return
	}

	hashed, err := uc.hasher.Hash(input.Password)
	if err != nil {
		uc.internalError(c, "Failed to hash password", err)
		return
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Pincode:  input.Pincode,
		Password: hashed,
		Role:     input.Role,
	}
	// Only the affiliation matching the role is kept.
	switch input.Role {
	case models.RoleCustomer:
		user.KrishiBhavanID = input.KrishiBhavanID
	case models.RoleSeller:
		user.KrishiBhavan = input.KrishiBhavan
	}

	id, err := uc.users.Insert(ctx, user)
	if errors.Is(err, repository.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}
	if err != nil {
		uc.internalError(c, "Failed to register user", err)
		return
	}

	uc.log.Info("User registered", zap.String("user_id", id.Hex()), zap.String("role", string(user.Role)))
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": id.Hex()})
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

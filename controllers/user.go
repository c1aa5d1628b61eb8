package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"krishi-market/models"
	"krishi-market/repository"
	"krishi-market/utils"
)

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()

	existing, err := uc.users.FindByID(ctx, input.UserID, false)
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	case err != nil:
		uc.internalError(c, "Failed to fetch user", err)
		return
	}

	if errs := utils.ValidateProfileUpdate(input); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	changes := changedFields(existing, input)
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updates were made"})
		return
	}

	if email, ok := changes["email"].(string); ok {
		owner, err := uc.users.FindByEmail(ctx, email)
		if err == nil && owner.ID != existing.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			uc.internalError(c, "Failed to check existing email", err)
			return
		}
	}

	modified, err := uc.users.UpdateFields(ctx, input.UserID, changes)
	if errors.Is(err, repository.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}
	if err != nil {
		uc.internalError(c, "Failed to update profile", err)
		return
	}
	if modified == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update profile"})
		return
	}

	uc.profiles.Invalidate(ctx, input.UserID)

	updated, err := uc.users.FindByID(ctx, input.UserID, false)
	if err != nil {
		uc.internalError(c, "Failed to reload user", err)
		return
	}
	uc.profiles.Refresh(ctx, updated)

	uc.log.Info("Profile updated", zap.String("user_id", input.UserID), zap.Strings("fields", sortedKeys(changes)))
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": updated})
}

func (uc *UserController) GetUserProfile(c *gin.Context) {
	profile, err := uc.profiles.PublicProfile(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	case err != nil:
		uc.internalError(c, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// changedFields keeps the editable fields that were sent non-empty and differ
// from the stored document.
func changedFields(existing *models.User, input models.UpdateProfileRequest) bson.M {
	candidates := []struct {
		key      string
		incoming string
		current  string
	}{
		{"name", input.Name, existing.Name},
		{"email", input.Email, existing.Email},
		{"phone", input.Phone, existing.Phone},
		{"address", input.Address, existing.Address},
		{"pincode", input.Pincode, existing.Pincode},
	}

	changes := bson.M{}
	for _, f := range candidates {
		if f.incoming != "" && f.incoming != f.current {
			changes[f.key] = f.incoming
		}
	}
	return changes
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/user"
	"clinicbook/utils"
)

// UserHandler serves profile and directory endpoints.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	usr, err := h.UserService.GetByID(c.Request.Context(), caller.ID)
	if err != nil {
		utils.GetLogger().Error("User not found", zap.String("id", caller.ID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler handles PUT /api/users/profile. Only the fields
// present in the body are changed.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var updates user.ProfileUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	usr, err := h.UserService.UpdateProfile(c.Request.Context(), caller.ID, updates)
	if err != nil {
		utils.GetLogger().Error("Failed to update profile", zap.String("id", caller.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// ListDoctorsHandler handles GET /api/doctors.
func (h *UserHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.UserService.ListByRole(c.Request.Context(), models.RoleDoctor)
	if err != nil {
		utils.GetLogger().Error("Failed to list doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list doctors"})
		return
	}
	if doctors == nil {
		doctors = []models.User{}
	}
	c.JSON(http.StatusOK, doctors)
}

// WaitingListHandler handles GET /api/patients/waiting-list.
func (h *UserHandler) WaitingListHandler(c *gin.Context) {
	patients, err := h.UserService.ListByRole(c.Request.Context(), models.RolePatient)
	if err != nil {
		utils.GetLogger().Error("Failed to list patients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list patients"})
		return
	}
	if patients == nil {
		patients = []models.User{}
	}
	c.JSON(http.StatusOK, patients)
}

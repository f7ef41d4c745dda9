package handler

import (
	"errors"
	"net/http"
	"time"

	"restaurant-admin-service/internal/middleware"
	"restaurant-admin-service/internal/model"
	"restaurant-admin-service/pkg/database"
	"restaurant-admin-service/pkg/logger"
	"restaurant-admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetProfile returns the caller's profile with their restaurant link.
// Clients call this once to learn which restaurant scopes their session.
func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		log.Error("Profile lookup without an authenticated user")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	var profile model.Profile
	result := database.GetDB().Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("No profile for user", zap.String("user_id", userID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		log.Error("Failed to fetch profile", zap.String("user_id", userID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve profile"})
	}

	return c.JSON(http.StatusOK, profile)
}

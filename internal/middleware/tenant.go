package middleware

import (
	"errors"
	"net/http"
	"time"

	"restaurant-admin-service/internal/model"
	"restaurant-admin-service/pkg/database"
	"restaurant-admin-service/pkg/logger"
	"restaurant-admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TenantMiddleware resolves the caller's restaurant from their profile row
// and stores it in the context. Handlers behind it never run unscoped: a
// missing profile or a profile with no restaurant link stops the request.
func TenantMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			log.Error("Tenant resolution requested without an authenticated user")
			prometheus.TenantContextMissingCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		defer prometheus.TrackDBOperation("select")(time.Now())

		var profile model.Profile
		result := database.GetDB().Where("user_id = ?", userID).First(&profile)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				log.Warn("No profile linked to user", zap.String("user_id", userID))
				prometheus.TenantContextMissingCounter.Inc()
				return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
			}
			log.Error("Failed to resolve profile", zap.String("user_id", userID), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve restaurant"})
		}

		if profile.RestaurantID == nil {
			log.Warn("Profile has no restaurant link", zap.String("user_id", userID))
			prometheus.TenantContextMissingCounter.Inc()
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
		}

		c.Set("restaurant_id", *profile.RestaurantID)

		return next(c)
	}
}

// GetRestaurantIDFromContext retrieves the resolved restaurant ID from the
// context. Returns 0, false when the tenant was never resolved.
func GetRestaurantIDFromContext(c echo.Context) (uint, bool) {
	restaurantID, ok := c.Get("restaurant_id").(uint)
	return restaurantID, ok
}

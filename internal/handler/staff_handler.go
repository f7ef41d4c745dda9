package handler

import (
	"net/http"
	"strconv"
	"time"

	"restaurant-admin-service/internal/middleware"
	"restaurant-admin-service/internal/model"
	"restaurant-admin-service/pkg/database"
	"restaurant-admin-service/pkg/logger"
	"restaurant-admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StaffRequest defines the structure for staff creation/update requests
type StaffRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Shift     string `json:"shift"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// ListStaff handles retrieving all staff for the caller's restaurant
func ListStaff(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStaffOperation("list")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for staff list")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	var staff []model.StaffMember
	result := database.GetDB().
		Where("restaurant_id = ?", restaurantID).
		Order("first_name ASC").
		Find(&staff)
	if result.Error != nil {
		log.Error("Failed to list staff",
			zap.Uint("restaurant_id", restaurantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve staff"})
	}

	log.Info("Staff retrieved", zap.Uint("restaurant_id", restaurantID), zap.Int("count", len(staff)))
	return c.JSON(http.StatusOK, staff)
}

// CreateStaff handles adding a staff member to the caller's restaurant
func CreateStaff(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStaffOperation("create")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for staff creation")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	var req StaffRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid staff request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.FirstName == "" || req.LastName == "" {
		log.Warn("Staff creation missing required names")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}

	// Position and shift fall back to the form defaults when unspecified
	if req.Position == "" {
		req.Position = model.DefaultPosition
	}
	if req.Shift == "" {
		req.Shift = model.DefaultShift
	}

	staff := model.StaffMember{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Position:     req.Position,
		Shift:        req.Shift,
		Phone:        req.Phone,
		Email:        req.Email,
		RestaurantID: restaurantID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&staff)
	if result.Error != nil {
		log.Error("Failed to create staff member",
			zap.String("first_name", req.FirstName),
			zap.String("last_name", req.LastName),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create staff member"})
	}

	log.Info("Staff member created",
		zap.Uint("staff_id", staff.ID),
		zap.Uint("restaurant_id", restaurantID),
		zap.String("position", staff.Position))
	return c.JSON(http.StatusCreated, staff)
}

// UpdateStaff handles a full replace of a staff member's mutable fields
func UpdateStaff(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStaffOperation("update")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for staff update")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	id := c.Param("id")

	var req StaffRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid staff request data", zap.String("staff_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.FirstName == "" || req.LastName == "" {
		log.Warn("Staff update missing required names", zap.String("staff_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}

	if req.Position == "" {
		req.Position = model.DefaultPosition
	}
	if req.Shift == "" {
		req.Shift = model.DefaultShift
	}

	// Scoped lookup so one restaurant can never edit another's roster
	var staff model.StaffMember
	result := database.GetDB().
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&staff)
	if result.Error != nil {
		log.Warn("Staff member not found for update",
			zap.String("staff_id", id),
			zap.Uint("restaurant_id", restaurantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
	}

	staff.FirstName = req.FirstName
	staff.LastName = req.LastName
	staff.Position = req.Position
	staff.Shift = req.Shift
	staff.Phone = req.Phone
	staff.Email = req.Email

	defer prometheus.TrackDBOperation("update")(time.Now())

	result = database.GetDB().Save(&staff)
	if result.Error != nil {
		log.Error("Failed to update staff member", zap.String("staff_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update staff member"})
	}

	log.Info("Staff member updated", zap.Uint("staff_id", staff.ID), zap.Uint("restaurant_id", restaurantID))
	return c.JSON(http.StatusOK, staff)
}

// DeleteStaff handles removing a staff member. The delete is irreversible.
func DeleteStaff(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStaffOperation("delete")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for staff deletion")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid staff id", zap.String("staff_id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := database.GetDB().
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Delete(&model.StaffMember{})
	if result.Error != nil {
		log.Error("Failed to delete staff member",
			zap.Uint64("staff_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete staff member"})
	}

	if result.RowsAffected == 0 {
		log.Warn("Staff member not found for deletion",
			zap.Uint64("staff_id", id),
			zap.Uint("restaurant_id", restaurantID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
	}

	log.Info("Staff member deleted",
		zap.Uint64("staff_id", id),
		zap.Uint("restaurant_id", restaurantID),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{"message": "staff member deleted"})
}

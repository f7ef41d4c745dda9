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

const dateLayout = "2006-01-02"

// LeaveRequestInput defines the structure for leave creation requests
type LeaveRequestInput struct {
	StaffID   uint   `json:"staff_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// LeaveStatusInput defines the structure for leave status transitions
type LeaveStatusInput struct {
	Status string `json:"status"`
}

// LeaveResponse is a leave request with joined staff display fields and the
// derived inclusive day count.
type LeaveResponse struct {
	model.LeaveRequest
	StaffFirstName string `json:"staff_first_name"`
	StaffLastName  string `json:"staff_last_name"`
	StaffPosition  string `json:"staff_position"`
	Days           int    `json:"days"`
}

// ListLeaves handles retrieving all leave requests for the caller's
// restaurant, newest range first, with staff display fields joined in.
func ListLeaves(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("list")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for leave list")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	leaves := []LeaveResponse{}
	result := database.GetDB().
		Model(&model.LeaveRequest{}).
		Select("staff_leaves.*, staff.first_name AS staff_first_name, staff.last_name AS staff_last_name, staff.position AS staff_position").
		Joins("JOIN staff ON staff.id = staff_leaves.staff_id").
		Where("staff_leaves.restaurant_id = ?", restaurantID).
		Order("staff_leaves.start_date DESC").
		Scan(&leaves)
	if result.Error != nil {
		log.Error("Failed to list leave requests",
			zap.Uint("restaurant_id", restaurantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve leave requests"})
	}

	for i := range leaves {
		leaves[i].Days = leaves[i].LeaveRequest.Days()
	}

	log.Info("Leave requests retrieved", zap.Uint("restaurant_id", restaurantID), zap.Int("count", len(leaves)))
	return c.JSON(http.StatusOK, leaves)
}

// CreateLeave handles creating a leave request. New requests are always
// pending regardless of input.
func CreateLeave(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("create")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for leave creation")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	var req LeaveRequestInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid leave request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.StaffID == 0 {
		log.Warn("Leave creation missing staff reference")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "staff_id is required"})
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		log.Warn("Invalid leave start date", zap.String("start_date", req.StartDate))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be a valid YYYY-MM-DD date"})
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		log.Warn("Invalid leave end date", zap.String("end_date", req.EndDate))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be a valid YYYY-MM-DD date"})
	}
	if endDate.Before(startDate) {
		log.Warn("Leave end date precedes start date",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date cannot precede start_date"})
	}

	// The referenced staff member must belong to the caller's restaurant
	var staff model.StaffMember
	result := database.GetDB().
		Where("id = ? AND restaurant_id = ?", req.StaffID, restaurantID).
		First(&staff)
	if result.Error != nil {
		log.Warn("Staff member not found for leave creation",
			zap.Uint("staff_id", req.StaffID),
			zap.Uint("restaurant_id", restaurantID),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "staff member not found"})
	}

	leave := model.LeaveRequest{
		StaffID:      req.StaffID,
		RestaurantID: restaurantID,
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       req.Reason,
		Status:       model.LeaveStatusPending,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result = database.GetDB().Create(&leave)
	if result.Error != nil {
		log.Error("Failed to create leave request",
			zap.Uint("staff_id", req.StaffID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create leave request"})
	}

	log.Info("Leave request created",
		zap.Uint("leave_id", leave.ID),
		zap.Uint("staff_id", leave.StaffID),
		zap.Uint("restaurant_id", restaurantID),
		zap.Int("days", leave.Days()))
	return c.JSON(http.StatusCreated, leave)
}

// UpdateLeaveStatus handles the one-shot pending -> approved/rejected
// transition. The update carries a status precondition, so a concurrent
// second approval loses with a conflict instead of silently winning.
func UpdateLeaveStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("transition")

	restaurantID, ok := middleware.GetRestaurantIDFromContext(c)
	if !ok {
		log.Error("Restaurant not resolved for leave transition")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no restaurant linked to this account"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		log.Warn("Invalid leave id", zap.String("leave_id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid leave id"})
	}

	var req LeaveStatusInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid leave status data", zap.Uint64("leave_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if !model.IsValidLeaveStatus(req.Status) {
		log.Warn("Invalid leave status target",
			zap.Uint64("leave_id", id),
			zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or rejected"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	result := database.GetDB().
		Model(&model.LeaveRequest{}).
		Where("id = ? AND restaurant_id = ? AND status = ?", id, restaurantID, model.LeaveStatusPending).
		Update("status", req.Status)
	if result.Error != nil {
		log.Error("Failed to update leave status",
			zap.Uint64("leave_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update leave request"})
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing record from an already-decided one
		var leave model.LeaveRequest
		lookup := database.GetDB().
			Where("id = ? AND restaurant_id = ?", id, restaurantID).
			First(&leave)
		if lookup.Error != nil {
			log.Warn("Leave request not found for transition",
				zap.Uint64("leave_id", id),
				zap.Uint("restaurant_id", restaurantID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "leave request not found"})
		}
		log.Warn("Leave request already decided",
			zap.Uint64("leave_id", id),
			zap.String("current_status", leave.Status))
		return c.JSON(http.StatusConflict, echo.Map{"error": "leave request is no longer pending"})
	}

	log.Info("Leave request status updated",
		zap.Uint64("leave_id", id),
		zap.Uint("restaurant_id", restaurantID),
		zap.String("status", req.Status))
	return c.JSON(http.StatusOK, echo.Map{"message": "leave request " + req.Status})
}

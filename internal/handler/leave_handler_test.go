package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"restaurant-admin-service/internal/handler"
	"restaurant-admin-service/internal/model"

	"gorm.io/gorm"
)

func seedLeave(t *testing.T, db *gorm.DB, staffID, restaurantID uint, start, end, status string) model.LeaveRequest {
	t.Helper()
	startDate, _ := time.Parse("2006-01-02", start)
	endDate, _ := time.Parse("2006-01-02", end)
	leave := model.LeaveRequest{
		StaffID:      staffID,
		RestaurantID: restaurantID,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       status,
	}
	if err := db.Create(&leave).Error; err != nil {
		t.Fatalf("failed to seed leave request: %v", err)
	}
	return leave
}

func TestCreateLeaveAlwaysPending(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 1, "Ana", "Reyes")

	// A status field in the payload must be ignored
	body := fmt.Sprintf(`{"staff_id":%d,"start_date":"2024-03-01","end_date":"2024-03-05","reason":"vacation","status":"approved"}`, staff.ID)
	c, rec := newJSONContext(http.MethodPost, "/api/leaves", body)
	withTenant(c, 1)

	if err := handler.CreateLeave(c); err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var leave model.LeaveRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &leave); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if leave.Status != model.LeaveStatusPending {
		t.Errorf("expected new leave to be pending, got %q", leave.Status)
	}
}

func TestCreateLeaveRejectsEndBeforeStart(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 1, "Ana", "Reyes")

	body := fmt.Sprintf(`{"staff_id":%d,"start_date":"2024-03-05","end_date":"2024-03-01"}`, staff.ID)
	c, rec := newJSONContext(http.MethodPost, "/api/leaves", body)
	withTenant(c, 1)

	if err := handler.CreateLeave(c); err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when end precedes start, got %d", rec.Code)
	}
}

func TestCreateLeaveRejectsForeignStaff(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 2, "Bob", "Other")

	body := fmt.Sprintf(`{"staff_id":%d,"start_date":"2024-03-01","end_date":"2024-03-02"}`, staff.ID)
	c, rec := newJSONContext(http.MethodPost, "/api/leaves", body)
	withTenant(c, 1)

	if err := handler.CreateLeave(c); err != nil {
		t.Fatalf("CreateLeave returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for staff of another restaurant, got %d", rec.Code)
	}
}

func TestListLeavesJoinsStaffAndComputesDays(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 1, "Ana", "Reyes")
	seedLeave(t, db, staff.ID, 1, "2024-01-01", "2024-01-03", model.LeaveStatusPending)
	seedLeave(t, db, staff.ID, 1, "2024-02-10", "2024-02-10", model.LeaveStatusApproved)

	c, rec := newJSONContext(http.MethodGet, "/api/leaves", "")
	withTenant(c, 1)

	if err := handler.ListLeaves(c); err != nil {
		t.Fatalf("ListLeaves returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var leaves []handler.LeaveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &leaves); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leave requests, got %d", len(leaves))
	}

	// Ordered by start date descending: February range first
	if leaves[0].Days != 1 {
		t.Errorf("expected 1 day for the same-day leave, got %d", leaves[0].Days)
	}
	if leaves[1].Days != 3 {
		t.Errorf("expected 3 days for 2024-01-01..2024-01-03, got %d", leaves[1].Days)
	}
	for _, l := range leaves {
		if l.StaffFirstName != "Ana" || l.StaffLastName != "Reyes" {
			t.Errorf("expected joined staff display fields, got %q %q", l.StaffFirstName, l.StaffLastName)
		}
	}
}

func TestListLeavesIsTenantScoped(t *testing.T) {
	db := setupTestDB(t)
	mine := seedStaff(t, db, 1, "Ana", "Reyes")
	other := seedStaff(t, db, 2, "Bob", "Other")
	seedLeave(t, db, mine.ID, 1, "2024-01-01", "2024-01-02", model.LeaveStatusPending)
	seedLeave(t, db, other.ID, 2, "2024-01-01", "2024-01-02", model.LeaveStatusPending)

	c, rec := newJSONContext(http.MethodGet, "/api/leaves", "")
	withTenant(c, 1)

	if err := handler.ListLeaves(c); err != nil {
		t.Fatalf("ListLeaves returned error: %v", err)
	}

	var leaves []handler.LeaveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &leaves); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(leaves) != 1 {
		t.Fatalf("expected 1 leave request for restaurant 1, got %d", len(leaves))
	}
	if leaves[0].RestaurantID != 1 {
		t.Errorf("leave leaked from restaurant %d", leaves[0].RestaurantID)
	}
}

func TestUpdateLeaveStatusApprovesPending(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 1, "Ana", "Reyes")
	leave := seedLeave(t, db, staff.ID, 1, "2024-03-01", "2024-03-05", model.LeaveStatusPending)

	c, rec := newJSONContext(http.MethodPatch, "/api/leaves/"+strconv.Itoa(int(leave.ID))+"/status", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(leave.ID)))
	withTenant(c, 1)

	if err := handler.UpdateLeaveStatus(c); err != nil {
		t.Fatalf("UpdateLeaveStatus returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated model.LeaveRequest
	if err := db.First(&updated, leave.ID).Error; err != nil {
		t.Fatalf("failed to reload leave request: %v", err)
	}
	if updated.Status != model.LeaveStatusApproved {
		t.Errorf("expected approved, got %q", updated.Status)
	}
}

func TestUpdateLeaveStatusConflictsWhenAlreadyDecided(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 1, "Ana", "Reyes")
	leave := seedLeave(t, db, staff.ID, 1, "2024-03-01", "2024-03-05", model.LeaveStatusApproved)

	c, rec := newJSONContext(http.MethodPatch, "/api/leaves/"+strconv.Itoa(int(leave.ID))+"/status", `{"status":"rejected"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(leave.ID)))
	withTenant(c, 1)

	if err := handler.UpdateLeaveStatus(c); err != nil {
		t.Fatalf("UpdateLeaveStatus returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for an already-decided leave, got %d", rec.Code)
	}

	var unchanged model.LeaveRequest
	if err := db.First(&unchanged, leave.ID).Error; err != nil {
		t.Fatalf("failed to reload leave request: %v", err)
	}
	if unchanged.Status != model.LeaveStatusApproved {
		t.Errorf("expected the decided status to survive, got %q", unchanged.Status)
	}
}

func TestUpdateLeaveStatusRejectsInvalidTarget(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 1, "Ana", "Reyes")
	leave := seedLeave(t, db, staff.ID, 1, "2024-03-01", "2024-03-05", model.LeaveStatusPending)

	c, rec := newJSONContext(http.MethodPatch, "/api/leaves/"+strconv.Itoa(int(leave.ID))+"/status", `{"status":"pending"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(leave.ID)))
	withTenant(c, 1)

	if err := handler.UpdateLeaveStatus(c); err != nil {
		t.Fatalf("UpdateLeaveStatus returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a pending target, got %d", rec.Code)
	}
}

func TestUpdateLeaveStatusNotFoundForForeignTenant(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, 2, "Bob", "Other")
	leave := seedLeave(t, db, staff.ID, 2, "2024-03-01", "2024-03-05", model.LeaveStatusPending)

	c, rec := newJSONContext(http.MethodPatch, "/api/leaves/"+strconv.Itoa(int(leave.ID))+"/status", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(leave.ID)))
	withTenant(c, 1)

	if err := handler.UpdateLeaveStatus(c); err != nil {
		t.Fatalf("UpdateLeaveStatus returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a foreign leave request, got %d", rec.Code)
	}
}

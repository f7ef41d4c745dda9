package model

import (
	"testing"
	"time"
)

func TestLeaveDaysInclusive(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2024-01-01")
	end, _ := time.Parse("2006-01-02", "2024-01-03")

	leave := LeaveRequest{StartDate: start, EndDate: end}
	if got := leave.Days(); got != 3 {
		t.Errorf("expected 3 days for 2024-01-01..2024-01-03, got %d", got)
	}
}

func TestLeaveDaysSingleDay(t *testing.T) {
	day, _ := time.Parse("2006-01-02", "2024-06-15")

	leave := LeaveRequest{StartDate: day, EndDate: day}
	if got := leave.Days(); got != 1 {
		t.Errorf("expected 1 day for a same-day leave, got %d", got)
	}
}

func TestIsValidLeaveStatus(t *testing.T) {
	if !IsValidLeaveStatus(LeaveStatusApproved) {
		t.Error("expected approved to be a valid transition target")
	}
	if !IsValidLeaveStatus(LeaveStatusRejected) {
		t.Error("expected rejected to be a valid transition target")
	}
	if IsValidLeaveStatus(LeaveStatusPending) {
		t.Error("pending must not be a transition target")
	}
	if IsValidLeaveStatus("cancelled") {
		t.Error("unknown statuses must be rejected")
	}
}

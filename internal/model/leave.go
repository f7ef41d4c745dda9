package model

import (
	"time"
)

// Leave request statuses. A request is created pending and transitions to
// approved or rejected exactly once.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRequest represents a staff member's requested absence range
type LeaveRequest struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	StaffID      uint      `json:"staff_id" gorm:"index;not null"`
	RestaurantID uint      `json:"restaurant_id" gorm:"index;not null"`
	StartDate    time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate      time.Time `json:"end_date" gorm:"type:date;not null"`
	Reason       string    `json:"reason" gorm:"type:text"`
	Status       string    `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt    time.Time `json:"created_at"`
}

// Days returns the inclusive day count of the leave range
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// IsValidLeaveStatus reports whether s is a recognized transition target
func IsValidLeaveStatus(s string) bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// TableName maps the model to the staff_leaves table
func (LeaveRequest) TableName() string {
	return "staff_leaves"
}

package handler_test

import (
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"restaurant-admin-service/internal/model"
	"restaurant-admin-service/pkg/config"
	"restaurant-admin-service/pkg/database"
	"restaurant-admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	// Metric vectors must exist before handlers record into them
	appConfig, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(appConfig)
	os.Exit(m.Run())
}

// setupTestDB installs a fresh in-memory database for one test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A second connection to :memory: would see an empty database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database object: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Profile{},
		&model.StaffMember{},
		&model.LeaveRequest{},
		&model.MenuItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.SetDB(db)
	return db
}

// newJSONContext builds an Echo context for a JSON request
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withTenant marks the context as resolved to the given restaurant
func withTenant(c echo.Context, restaurantID uint) {
	c.Set("user_id", "user-under-test")
	c.Set("restaurant_id", restaurantID)
}

// seedStaff inserts a staff member for the given restaurant
func seedStaff(t *testing.T, db *gorm.DB, restaurantID uint, firstName, lastName string) model.StaffMember {
	t.Helper()
	staff := model.StaffMember{
		FirstName:    firstName,
		LastName:     lastName,
		Position:     model.PositionWaiter,
		Shift:        model.ShiftMorning,
		RestaurantID: restaurantID,
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("failed to seed staff member: %v", err)
	}
	return staff
}

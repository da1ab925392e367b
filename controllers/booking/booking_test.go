package booking

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swiftship-backend/database"
	"swiftship-backend/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// bookingApp wires the booking handler behind a stub that injects the JWT
// claims the auth middleware would normally set.
func bookingApp(db *gorm.DB, userUUID string) *fiber.App {
	bc := NewBookingController(db, nil, nil)
	app := fiber.New()
	app.Post("/api/booking/create", func(c *fiber.Ctx) error {
		c.Locals("user", jwt.MapClaims{"uuid": userUUID})
		return c.Next()
	}, bc.Book)
	return app
}

func profileRows(id uint, userUUID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "uuid", "full_name", "phone", "email", "email_verified",
		"permissions", "created_at", "updated_at",
	}).AddRow(id, userUUID, "Ada Customer", nil, nil, false, nil, now, now)
}

func savedQuoteRows(id, userID uint, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "origin", "destination",
		"weight_kg", "volumetric_weight", "chargeable_weight",
		"length_cm", "width_cm", "height_cm",
		"service_type", "price", "delivery_days", "status",
		"created_at", "updated_at",
	}).AddRow(id, userID, "United States", "Germany",
		5.5, 1.8, 5.5,
		30.0, 20.0, 15.0,
		"Express Air", 195.62, "1-2", status,
		now, now)
}

func TestBookCreatesShipmentFromSavedQuote(t *testing.T) {
	db, mock := newMockDB(t)
	database.DB = db

	userUUID := "4dbfae94-7e3e-4ccd-8b3f-30f1d8d3f2aa"

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE uuid`).
		WithArgs(userUUID, 1).
		WillReturnRows(profileRows(9, userUUID))

	mock.ExpectBegin()
	// The re-read must take a row lock so concurrent bookings serialize.
	mock.ExpectQuery(`SELECT \* FROM "saved_quotes" WHERE id .+ AND user_id .+ FOR UPDATE`).
		WithArgs(uint(42), uint(9), 1).
		WillReturnRows(savedQuoteRows(42, 9, "saved"))
	mock.ExpectExec(`UPDATE "saved_quotes" SET .+ WHERE id .+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "shipments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))
	mock.ExpectQuery(`INSERT INTO "shipment_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	app := bookingApp(db, userUUID)
	req := httptest.NewRequest("POST", "/api/booking/create", strings.NewReader(`{"quote_id":42}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body types.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Booking created successfully", body.Message)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	trackingNumber, _ := data["tracking_number"].(string)
	assert.True(t, strings.HasPrefix(trackingNumber, "SS-"))
	assert.Len(t, trackingNumber, 13)
	assert.Equal(t, "United States", data["current_location"])
	assert.Equal(t, "pending", data["status"])
	assert.NotNil(t, data["estimated_delivery"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRejectsAlreadyBookedQuote(t *testing.T) {
	db, mock := newMockDB(t)
	database.DB = db

	userUUID := "d3adb33f-0000-4000-8000-000000000001"

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE uuid`).
		WithArgs(userUUID, 1).
		WillReturnRows(profileRows(4, userUUID))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "saved_quotes" WHERE id .+ AND user_id`).
		WithArgs(uint(5), uint(4), 1).
		WillReturnRows(savedQuoteRows(5, 4, "booked"))
	mock.ExpectRollback()

	app := bookingApp(db, userUUID)
	req := httptest.NewRequest("POST", "/api/booking/create", strings.NewReader(`{"quote_id":5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookLostRaceReturnsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	database.DB = db

	userUUID := "d3adb33f-0000-4000-8000-000000000003"

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE uuid`).
		WithArgs(userUUID, 1).
		WillReturnRows(profileRows(4, userUUID))

	// The quote still reads as bookable, but the conditional flip matches
	// no rows: a concurrent booking won the race. No shipment is created.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "saved_quotes" WHERE id .+ AND user_id .+ FOR UPDATE`).
		WithArgs(uint(6), uint(4), 1).
		WillReturnRows(savedQuoteRows(6, 4, "saved"))
	mock.ExpectExec(`UPDATE "saved_quotes" SET .+ WHERE id .+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	app := bookingApp(db, userUUID)
	req := httptest.NewRequest("POST", "/api/booking/create", strings.NewReader(`{"quote_id":6}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookUnknownQuoteReturnsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	database.DB = db

	userUUID := "d3adb33f-0000-4000-8000-000000000002"

	mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE uuid`).
		WithArgs(userUUID, 1).
		WillReturnRows(profileRows(4, userUUID))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "saved_quotes" WHERE id .+ AND user_id`).
		WithArgs(uint(404), uint(4), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	app := bookingApp(db, userUUID)
	req := httptest.NewRequest("POST", "/api/booking/create", strings.NewReader(`{"quote_id":404}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.NoError(t, mock.ExpectationsWereMet())
}

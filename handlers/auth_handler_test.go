package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/car_rental/database"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}

	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		database.DB = prev
		conn.Close()
	})
	return mock
}

func TestRegisterUserDuplicateEmailConflicts(t *testing.T) {
	mock := newMockDB(t)

	// With TranslateError enabled the postgres unique violation surfaces as
	// gorm.ErrDuplicatedKey.
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(gorm.ErrDuplicatedKey)

	app := fiber.New()
	app.Post("/api/v1/auth/register", RegisterUser)

	body := []byte(`{"full_name":"Asha Verma","email":"asha@example.com","password":"secret123"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusConflict)
	}
}

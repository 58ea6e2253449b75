package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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

	prev := DB
	DB = gdb
	t.Cleanup(func() {
		DB = prev
		conn.Close()
	})
	return mock
}

func TestSeedCarsPopulatesEmptyCatalogue(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "cars"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "cars"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(uuid.New().String()).
			AddRow(uuid.New().String()).
			AddRow(uuid.New().String()))

	SeedCars()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedCarsSkipsExistingCatalogue(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "cars"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	SeedCars()

	// A non-empty catalogue is never reseeded.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

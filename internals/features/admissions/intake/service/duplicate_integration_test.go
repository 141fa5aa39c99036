package service

import (
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appService "qcm_backend/internals/features/admissions/applications/service"
)

// setupIntegrationDB opens the test database and shadows the applications
// table with a session-scoped temp table. Pool size is pinned to one
// connection so every query sees the temp table.
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping integration test - TEST_DATABASE_URL not set")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Skipf("Skipping integration test - database not available: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("Skipping integration test - database ping failed: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	ddl := `CREATE TEMP TABLE applications (
		application_id varchar(40) PRIMARY KEY,
		application_class_code varchar(20) NOT NULL,
		application_status varchar(20) NOT NULL DEFAULT 'pending',
		application_student_details jsonb NOT NULL DEFAULT '{}',
		application_other_details jsonb NOT NULL DEFAULT '{}',
		application_created_at timestamptz NOT NULL DEFAULT now()
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create temp table: %v", err)
	}
	return db
}

func seedApplication(t *testing.T, db *gorm.DB, id, class, status, name, mobile, email string) {
	t.Helper()
	err := db.Exec(`INSERT INTO applications
		(application_id, application_class_code, application_status, application_student_details, application_other_details, application_created_at)
		VALUES (?, ?, ?, jsonb_build_object('fullName', ?::text, 'mobile', ?::text), jsonb_build_object('email', ?::text), ?)`,
		id, class, status, name, mobile, email, time.Now()).Error
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestFindDuplicatesIntegration(t *testing.T) {
	db := setupIntegrationDB(t)

	seedApplication(t, db, "QTR-B04-001", "QTR-B04", "pending", "Ali Khan", "+974 5512 3456", "ali@example.com")
	seedApplication(t, db, "QTR-B05-001", "QTR-B05", "approved", "Ali Khan", "97455123456", "ali.other@example.com")
	seedApplication(t, db, "QTR-B04-002", "QTR-B04", "pending", "Omar Farooq", "+974 6644 5533", "omar@example.com")

	// mobile tail match crosses classes and formatting
	matches, err := FindDuplicates(db, "Ali Khan", "0097455123456", "")
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("mobile matches = %d, want 2", len(matches))
	}

	// email match is case insensitive
	matches, err = FindDuplicates(db, "", "", "OMAR@example.com")
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 1 || matches[0].ApplicationID != "QTR-B04-002" {
		t.Fatalf("email matches = %+v", matches)
	}

	// a local number without a country code still finds both stored forms
	matches, err = FindDuplicates(db, "", "55123456", "")
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("local mobile matches = %d, want 2", len(matches))
	}

	// nine digits that only share a short suffix with a stored number
	seedApplication(t, db, "QTR-B05-002", "QTR-B05", "pending", "Bilal Raza", "555123456", "bilal@example.com")
	matches, err = FindDuplicates(db, "", "123455123456", "")
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("suffix-only matches = %d, want 0", len(matches))
	}

	// fragments below eight digits are ignored entirely
	matches, err = FindDuplicates(db, "", "3456", "")
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("fragment matches = %d, want 0", len(matches))
	}
}

func TestCountClassDuplicatesIntegration(t *testing.T) {
	db := setupIntegrationDB(t)

	seedApplication(t, db, "QTR-B04-001", "QTR-B04", "pending", "Ali Khan", "55123456", "ali@example.com")
	seedApplication(t, db, "QTR-B04-002", "QTR-B04", "rejected", "Ali Khan", "55123456", "ali@example.com")
	seedApplication(t, db, "QTR-B05-001", "QTR-B05", "pending", "Ali Khan", "55123456", "ali@example.com")

	// same class, exact name and mobile; rejected row excluded
	n, err := CountClassDuplicates(db, "QTR-B04", "ali khan", "55123456")
	if err != nil {
		t.Fatalf("CountClassDuplicates: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}

	n, err = CountClassDuplicates(db, "QTR-B04", "Ali Khan", "99999999")
	if err != nil {
		t.Fatalf("CountClassDuplicates: %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
}

func TestNextApplicationIDIntegration(t *testing.T) {
	db := setupIntegrationDB(t)

	tx := db.Begin()
	id, err := appService.NextApplicationID(tx, "QTR-B04")
	if err != nil {
		t.Fatalf("NextApplicationID: %v", err)
	}
	if id != "QTR-B04-001" {
		t.Fatalf("first id = %q, want QTR-B04-001", id)
	}
	tx.Rollback()

	seedApplication(t, db, "QTR-B04-007", "QTR-B04", "pending", "Ali Khan", "55123456", "ali@example.com")

	tx = db.Begin()
	id, err = appService.NextApplicationID(tx, "QTR-B04")
	if err != nil {
		t.Fatalf("NextApplicationID: %v", err)
	}
	if id != "QTR-B04-008" {
		t.Fatalf("next id = %q, want QTR-B04-008", id)
	}
	tx.Rollback()

	// once the sequence grows past three digits the longer id must win,
	// even though "QTR-B04-999" sorts after "QTR-B04-1000" as text
	seedApplication(t, db, "QTR-B04-999", "QTR-B04", "pending", "Omar Farooq", "66445533", "omar@example.com")
	seedApplication(t, db, "QTR-B04-1000", "QTR-B04", "pending", "Bilal Raza", "66445534", "bilal@example.com")

	tx = db.Begin()
	id, err = appService.NextApplicationID(tx, "QTR-B04")
	if err != nil {
		t.Fatalf("NextApplicationID: %v", err)
	}
	if id != "QTR-B04-1001" {
		t.Fatalf("next id = %q, want QTR-B04-1001", id)
	}
	tx.Rollback()
}

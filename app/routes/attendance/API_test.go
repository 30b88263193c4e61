package attendance

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSearchPastClassesRejectsBadDate(t *testing.T) {
	app := fiber.New()
	app.Get("/api/attendance/search", SearchPastClassesAPI)

	req := httptest.NewRequest("GET", "/api/attendance/search?date=January-5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSearchAttendanceRecordsRejectsBadStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/api/attendance/records", SearchAttendanceRecordsAPI)

	req := httptest.NewRequest("GET", "/api/attendance/records?status=here", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

package attendance

import (
	"time"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/models"
	"karate-attendance/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetTodayClassesAPI(c *fiber.Ctx) error {
	classes, err := services.TodayClasses(config.GetDB(), time.Now())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch today's classes"})
	}
	return c.JSON(fiber.Map{
		"classes": classes,
		"count":   len(classes),
	})
}

func GetNextClassAPI(c *fiber.Ctx) error {
	next, found, err := services.NextUpcomingClass(config.GetDB(), time.Now())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to find next class"})
	}
	if !found {
		return c.JSON(fiber.Map{"class": nil, "message": "No upcoming classes"})
	}
	return c.JSON(fiber.Map{"class": next})
}

// MarkAttendanceAPI saves a batch of attendance records, then updates the
// touched schedules' session records with the recorder and completion status.
// Individual record failures are reported per record without failing the batch.
func MarkAttendanceAPI(c *fiber.Ctx) error {
	type MarkRequest struct {
		Records []*models.Attendance `json:"records"`
	}

	var req MarkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Records) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No attendance records provided"})
	}

	recordedBy := c.Locals("user_name").(string)
	results := services.MarkAttendance(config.GetDB(), config.GetSystem(), req.Records, recordedBy)

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	status := 200
	if succeeded == 0 {
		status = 400
	}
	return c.Status(status).JSON(fiber.Map{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}

func GetClassAttendanceAPI(c *fiber.Ctx) error {
	if d := c.Query("date"); d != "" {
		if _, err := services.ParseDate(d); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date " + d + ", expected YYYY-MM-DD"})
		}
	}

	records, err := database.GetClassAttendance(config.GetDB(),
		c.Params("scheduleId"), c.Query("date"), c.Query("category"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	return c.JSON(fiber.Map{
		"attendance": records,
		"count":      len(records),
	})
}

// SearchPastClassesAPI finds classes that already met, by date, instructor,
// or category, so staff can pull one up and edit its attendance.
func SearchPastClassesAPI(c *fiber.Ctx) error {
	date := c.Query("date")
	if date != "" {
		if _, err := services.ParseDate(date); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date " + date + ", expected YYYY-MM-DD"})
		}
	}
	category := c.Query("category")
	if category != "" && !config.GetSystem().IsValidCategory(category) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + category})
	}

	today := time.Now().Format(models.DateLayout)
	classes, err := database.SearchPastClasses(config.GetDB(), date, c.Query("instructor"), category, today)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to search past classes"})
	}
	return c.JSON(fiber.Map{
		"classes": classes,
		"count":   len(classes),
	})
}

func SearchAttendanceRecordsAPI(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !models.ValidAttendanceStatus(status) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status: " + status})
	}
	for _, d := range []string{c.Query("date_from"), c.Query("date_to")} {
		if d == "" {
			continue
		}
		if _, err := services.ParseDate(d); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date " + d + ", expected YYYY-MM-DD"})
		}
	}

	records, err := database.SearchAttendance(config.GetDB(),
		c.Query("q"), c.Query("date_from"), c.Query("date_to"), status, c.Query("category"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to search attendance"})
	}
	return c.JSON(fiber.Map{
		"attendance": records,
		"count":      len(records),
	})
}

func GetAttendanceReportAPI(c *fiber.Ctx) error {
	rangeStart, rangeEnd := services.ReportRange(c.Params("dateRange"), time.Now())

	report, err := database.GetAttendanceReport(config.GetDB(), rangeStart, rangeEnd)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return c.JSON(fiber.Map{
		"report":     report,
		"range":      c.Params("dateRange"),
		"start_date": rangeStart,
		"end_date":   rangeEnd,
	})
}

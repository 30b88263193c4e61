package schedules

import (
	"database/sql"
	"errors"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/models"
	"karate-attendance/app/services"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetSchedulesAPI(c *fiber.Ctx) error {
	filters := models.ScheduleFilters{
		RangeStart: c.Query("start_date"),
		RangeEnd:   c.Query("end_date"),
		ClassID:    c.Query("class_id"),
	}
	if filters.ClassID != "" && uuid.Validate(filters.ClassID) != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid class_id parameter"})
	}
	for _, d := range []string{filters.RangeStart, filters.RangeEnd} {
		if d == "" {
			continue
		}
		if _, err := services.ParseDate(d); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date " + d + ", expected YYYY-MM-DD"})
		}
	}

	schedules, err := database.FindSchedules(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch schedules"})
	}
	return c.JSON(fiber.Map{
		"schedules": schedules,
		"count":     len(schedules),
	})
}

// GetOccurrencesAPI expands schedule definitions into the per-date class
// list for a calendar range. Occurrences are computed, never stored.
func GetOccurrencesAPI(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		return c.Status(400).JSON(fiber.Map{"error": "start_date and end_date are required"})
	}

	occurrences, err := services.ExpandRange(config.GetDB(), startDate, endDate, c.Query("class_id"))
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to expand schedules"})
	}

	return c.JSON(fiber.Map{
		"occurrences": occurrences,
		"count":       len(occurrences),
	})
}

func GetScheduleByIDAPI(c *fiber.Ctx) error {
	schedule, err := database.GetScheduleByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch schedule"})
	}
	return c.JSON(fiber.Map{"schedule": schedule})
}

func CreateScheduleAPI(c *fiber.Ctx) error {
	var schedule models.ClassSchedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": utils.ValidationMessages(err)})
	}
	if err := services.ValidateScheduleDefinition(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if schedule.Status == "" {
		schedule.Status = models.StatusScheduled
	}

	// The referenced class must exist.
	if _, err := database.GetClassByID(config.GetDB(), schedule.ClassID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown class: " + schedule.ClassID})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to verify class"})
	}

	if err := database.CreateSchedule(config.GetDB(), &schedule); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create schedule"})
	}
	return c.Status(201).JSON(fiber.Map{"schedule": schedule})
}

func UpdateScheduleAPI(c *fiber.Ctx) error {
	var schedule models.ClassSchedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	schedule.ID = c.Params("id")
	if err := utils.ValidateStruct(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": utils.ValidationMessages(err)})
	}
	if err := services.ValidateScheduleDefinition(&schedule); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdateSchedule(config.GetDB(), &schedule); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update schedule"})
	}
	return c.JSON(fiber.Map{"schedule": schedule})
}

// UpdateSessionAPI records the outcome of one occurrence of a schedule:
// who taught it, what state it ended in, and any notes. Other dates'
// session records are never touched.
func UpdateSessionAPI(c *fiber.Ctx) error {
	type SessionRequest struct {
		Date           string             `json:"date"`
		Instructor     string             `json:"instructor"`
		Status         models.ClassStatus `json:"status"`
		Notes          string             `json:"notes"`
		ScheduleStatus models.ClassStatus `json:"schedule_status"` // optional parent lifecycle change
	}

	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	schedule, err := services.ApplyOutcome(config.GetDB(), services.Outcome{
		ScheduleID:     c.Params("id"),
		Date:           req.Date,
		Instructor:     req.Instructor,
		Status:         req.Status,
		Notes:          req.Notes,
		ScheduleStatus: req.ScheduleStatus,
	})
	if err != nil {
		switch {
		case services.IsValidation(err):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Schedule not found"})
		case errors.Is(err, services.ErrConflict):
			return c.Status(409).JSON(fiber.Map{"error": "Concurrent update, retry the request"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update session"})
		}
	}

	return c.JSON(fiber.Map{"schedule": schedule})
}

func DeleteScheduleAPI(c *fiber.Ctx) error {
	if err := database.DeleteSchedule(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete schedule"})
	}
	return c.JSON(fiber.Map{"message": "Schedule deleted"})
}

package students

import (
	"database/sql"

	"karate-attendance/app/config"
	"karate-attendance/app/database"
	"karate-attendance/app/models"
	"karate-attendance/app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

func GetStudentsAPI(c *fiber.Ctx) error {
	category := c.Query("category")

	var (
		students []*models.Student
		err      error
	)
	if category != "" {
		if !config.GetSystem().IsValidCategory(category) {
			return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + category})
		}
		students, err = database.GetStudentsByCategory(config.GetDB(), category)
	} else {
		students, err = database.GetAllStudents(config.GetDB())
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentsByCategoryAPI(c *fiber.Ctx) error {
	category := c.Params("category")
	if !config.GetSystem().IsValidCategory(category) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + category})
	}

	students, err := database.GetStudentsByCategory(config.GetDB(), category)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(fiber.Map{"student": student})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": utils.ValidationMessages(err)})
	}
	if bad, ok := unknownCategory(student.Categories); ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + bad})
	}
	if !config.GetSystem().IsValidBeltLevel(student.BeltLevel) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown belt level: " + student.BeltLevel})
	}
	if student.Status == "" {
		student.Status = models.StudentActive
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "A student with this email already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(201).JSON(fiber.Map{"student": student})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	student.ID = c.Params("id")
	if err := utils.ValidateStruct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": utils.ValidationMessages(err)})
	}
	if bad, ok := unknownCategory(student.Categories); ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category: " + bad})
	}
	if !config.GetSystem().IsValidBeltLevel(student.BeltLevel) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown belt level: " + student.BeltLevel})
	}

	if err := database.UpdateStudent(config.GetDB(), &student); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{"student": student})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}
	return c.JSON(fiber.Map{"message": "Student deleted"})
}

func unknownCategory(categories []string) (string, bool) {
	sys := config.GetSystem()
	for _, cat := range categories {
		if !sys.IsValidCategory(cat) {
			return cat, true
		}
	}
	return "", false
}

package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"qcm_backend/internals/features/admissions/classes/dto"
	"qcm_backend/internals/features/admissions/classes/model"
	helper "qcm_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
)

/* ================= Controller & Constructor ================= */

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

// single validator instance for this package
var validate = validator.New()

/* ================= Handlers ================= */

// POST /api/a/classes
func (ctl *ClassController) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	req.ClassCode = strings.ToUpper(strings.TrimSpace(req.ClassCode))
	req.ClassName = strings.TrimSpace(req.ClassName)

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()

	tx := ctl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// class code is the natural key; case-insensitive, soft-delete aware
	var exists model.ClassModel
	findErr := tx.
		Where("lower(class_code) = lower(?) AND class_deleted_at IS NULL", m.ClassCode).
		Take(&exists).Error
	if findErr == nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusConflict, "Class code is already in use")
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, findErr.Error())
	}

	if err := tx.Create(m).Error; err != nil {
		tx.Rollback()
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate") || strings.Contains(low, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Class code is already in use")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Class created", dto.NewClassResponse(m))
}

// PUT /api/a/classes/:code
func (ctl *ClassController) UpdateClass(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class code")
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tx := ctl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var existing model.ClassModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&existing, "class_code = ? AND class_deleted_at IS NULL", code).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	req.ApplyToModel(&existing)

	if err := tx.Model(&model.ClassModel{}).
		Where("class_code = ?", existing.ClassCode).
		Updates(&existing).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update class")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Class updated", dto.NewClassResponse(&existing))
}

// GET /api/u/classes/:code
func (ctl *ClassController) GetClassByCode(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var m model.ClassModel
	if err := ctl.DB.First(&m, "class_code = ? AND class_deleted_at IS NULL", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}
	return helper.JsonOK(c, "ok", dto.NewClassResponse(&m))
}

// GET /api/public/classes/:code/template (also under /api/u)
func (ctl *ClassController) GetClassTemplate(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var m model.ClassModel
	if err := ctl.DB.Select("class_code", "class_template").
		First(&m, "class_code = ? AND class_deleted_at IS NULL", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch template")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"class_code":     m.ClassCode,
		"class_template": m.ClassTemplate,
	})
}

// GET /api/u/classes
func (ctl *ClassController) ListClasses(c *fiber.Ctx) error {
	var q dto.ListClassQuery
	q.Limit, q.Offset = 20, 0
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	tx := ctl.DB.Model(&model.ClassModel{}).
		Where("class_deleted_at IS NULL")

	if q.ActiveOnly != nil {
		tx = tx.Where("class_is_active = ?", *q.ActiveOnly)
	}
	if q.Search != nil && strings.TrimSpace(*q.Search) != "" {
		s := "%" + strings.ToLower(strings.TrimSpace(*q.Search)) + "%"
		tx = tx.Where("(LOWER(class_name) LIKE ? OR LOWER(class_code) LIKE ?)", s, s)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count classes")
	}

	sortVal := ""
	if q.Sort != nil {
		sortVal = strings.ToLower(strings.TrimSpace(*q.Sort))
	}
	switch sortVal {
	case "name_asc":
		tx = tx.Order("class_name ASC")
	case "name_desc":
		tx = tx.Order("class_name DESC")
	case "created_at_asc":
		tx = tx.Order("class_created_at ASC")
	default:
		tx = tx.Order("class_created_at DESC")
	}

	var rows []model.ClassModel
	if err := tx.Limit(q.Limit).Offset(q.Offset).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	items := make([]*dto.ClassResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.NewClassResponse(&rows[i]))
	}

	return helper.JsonList(c, items, fiber.Map{
		"limit":  q.Limit,
		"offset": q.Offset,
		"total":  int(total),
	})
}

// GET /api/public/classes
// Same listing, forced to active classes only.
func (ctl *ClassController) ListActiveClasses(c *fiber.Ctx) error {
	c.Context().QueryArgs().Set("active", "true")
	return ctl.ListClasses(c)
}

// DELETE /api/a/classes/:code
func (ctl *ClassController) SoftDeleteClass(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	tx := ctl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var m model.ClassModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "class_code = ? AND class_deleted_at IS NULL", code).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	now := time.Now()
	// Soft reference from applications: existing records keep their class_code.
	if err := tx.Model(&model.ClassModel{}).
		Where("class_code = ?", m.ClassCode).
		Updates(map[string]any{
			"class_deleted_at": now,
			"class_is_active":  false,
			"class_updated_at": now,
		}).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"class_code": m.ClassCode})
}

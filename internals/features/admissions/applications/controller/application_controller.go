package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"qcm_backend/internals/constants"
	"qcm_backend/internals/features/admissions/applications/dto"
	"qcm_backend/internals/features/admissions/applications/model"
	appService "qcm_backend/internals/features/admissions/applications/service"
	helper "qcm_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
)

/* ================= Controller & Constructor ================= */

type ApplicationController struct {
	DB *gorm.DB
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{DB: db}
}

var validate = validator.New()

// classInScope checks the moderator's class assignment. Admins see
// everything; moderators only their classes.
func classInScope(c *fiber.Ctx, classCode string) bool {
	if helper.GetUserRole(c) != constants.RoleModerator {
		return true
	}
	for _, code := range helper.GetModeratorClassCodes(c) {
		if strings.EqualFold(code, classCode) {
			return true
		}
	}
	return false
}

/* ================= Handlers ================= */

// POST /api/u/applications
func (ctl *ApplicationController) CreateApplication(c *fiber.Ctx) error {
	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.ApplicationClassCode = strings.ToUpper(strings.TrimSpace(req.ApplicationClassCode))
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fieldErrors := map[string][]string{}
			for _, fe := range verrs {
				fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], fe.Tag())
			}
			return helper.JsonValidationError(c, fieldErrors)
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !classInScope(c, req.ApplicationClassCode) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
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

	id, err := appService.NextApplicationID(tx, m.ApplicationClassCode)
	if err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate application id")
	}
	m.ApplicationID = id

	if err := tx.Create(m).Error; err != nil {
		tx.Rollback()
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate") || strings.Contains(low, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Application id collision, please retry")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create application")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Application created", dto.NewApplicationResponse(m))
}

// GET /api/u/applications
func (ctl *ApplicationController) ListApplications(c *fiber.Ctx) error {
	var q dto.ListApplicationQuery
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

	tx := ctl.DB.Model(&model.ApplicationModel{})

	// moderators are restricted to their assigned classes
	if helper.GetUserRole(c) == constants.RoleModerator {
		codes := helper.GetModeratorClassCodes(c)
		if len(codes) == 0 {
			return helper.JsonList(c, []any{}, fiber.Map{"limit": q.Limit, "offset": q.Offset, "total": 0})
		}
		tx = tx.Where("application_class_code IN ?", codes)
	}

	if q.ClassCode != nil && strings.TrimSpace(*q.ClassCode) != "" {
		tx = tx.Where("application_class_code = ?", strings.ToUpper(strings.TrimSpace(*q.ClassCode)))
	}
	if q.Status != nil && model.IsValidStatus(strings.TrimSpace(*q.Status)) {
		tx = tx.Where("application_status = ?", strings.TrimSpace(*q.Status))
	}
	if q.Search != nil && strings.TrimSpace(*q.Search) != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(*q.Search)) + "%"
		tx = tx.Where(`(
			LOWER(COALESCE(application_student_details->>'fullName', '')) LIKE ?
			OR LOWER(COALESCE(application_student_details->>'mobile', '')) LIKE ?
			OR LOWER(COALESCE(application_other_details->>'email', '')) LIKE ?
			OR LOWER(application_id) LIKE ?
		)`, like, like, like, like)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count applications")
	}

	sortVal := ""
	if q.Sort != nil {
		sortVal = strings.ToLower(strings.TrimSpace(*q.Sort))
	}
	switch sortVal {
	case "created_at_asc":
		tx = tx.Order("application_created_at ASC")
	case "id_asc":
		tx = tx.Order("application_id ASC")
	default:
		tx = tx.Order("application_created_at DESC")
	}

	var rows []model.ApplicationModel
	if err := tx.Limit(q.Limit).Offset(q.Offset).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch applications")
	}

	items := make([]*dto.ApplicationResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.NewApplicationResponse(&rows[i]))
	}

	return helper.JsonList(c, items, fiber.Map{
		"limit":  q.Limit,
		"offset": q.Offset,
		"total":  int(total),
	})
}

// GET /api/u/applications/:id
func (ctl *ApplicationController) GetApplicationByID(c *fiber.Ctx) error {
	id := strings.ToUpper(strings.TrimSpace(c.Params("id")))

	var m model.ApplicationModel
	if err := ctl.DB.First(&m, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch application")
	}
	if !classInScope(c, m.ApplicationClassCode) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}
	return helper.JsonOK(c, "ok", dto.NewApplicationResponse(&m))
}

// PUT /api/u/applications/:id
func (ctl *ApplicationController) UpdateApplication(c *fiber.Ctx) error {
	id := strings.ToUpper(strings.TrimSpace(c.Params("id")))

	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
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

	var existing model.ApplicationModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&existing, "application_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch application")
	}
	if !classInScope(c, existing.ApplicationClassCode) {
		tx.Rollback()
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	req.ApplyToModel(&existing)

	if err := tx.Model(&model.ApplicationModel{}).
		Where("application_id = ?", existing.ApplicationID).
		Updates(&existing).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update application")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Application updated", dto.NewApplicationResponse(&existing))
}

// PATCH /api/u/applications/:id/status
// Transitions are unconstrained: any status may replace any other.
func (ctl *ApplicationController) UpdateStatus(c *fiber.Ctx) error {
	id := strings.ToUpper(strings.TrimSpace(c.Params("id")))

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var existing model.ApplicationModel
	if err := ctl.DB.
		Select("application_id", "application_class_code").
		First(&existing, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch application")
	}
	if !classInScope(c, existing.ApplicationClassCode) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	if err := ctl.DB.Model(&model.ApplicationModel{}).
		Where("application_id = ?", id).
		Update("application_status", req.ApplicationStatus).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update status")
	}

	return helper.JsonUpdated(c, "Status updated", fiber.Map{
		"application_id":     id,
		"application_status": req.ApplicationStatus,
	})
}

// DELETE /api/u/applications/:id
func (ctl *ApplicationController) DeleteApplication(c *fiber.Ctx) error {
	id := strings.ToUpper(strings.TrimSpace(c.Params("id")))

	var existing model.ApplicationModel
	if err := ctl.DB.
		Select("application_id", "application_class_code").
		First(&existing, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Application not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch application")
	}
	if !classInScope(c, existing.ApplicationClassCode) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	if err := ctl.DB.Delete(&model.ApplicationModel{}, "application_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete application")
	}

	return helper.JsonDeleted(c, "Application deleted", fiber.Map{"application_id": id})
}

// GET /api/u/applications/stats
// Counts per class and status; feeds the dashboard.
func (ctl *ApplicationController) Stats(c *fiber.Ctx) error {
	type statRow struct {
		ClassCode string `json:"class_code" gorm:"column:application_class_code"`
		Status    string `json:"status" gorm:"column:application_status"`
		Count     int64  `json:"count" gorm:"column:cnt"`
	}

	tx := ctl.DB.Model(&model.ApplicationModel{}).
		Select("application_class_code, application_status, COUNT(*) AS cnt").
		Group("application_class_code, application_status")

	if helper.GetUserRole(c) == constants.RoleModerator {
		codes := helper.GetModeratorClassCodes(c)
		if len(codes) == 0 {
			return helper.JsonOK(c, "ok", []any{})
		}
		tx = tx.Where("application_class_code IN ?", codes)
	}

	var rows []statRow
	if err := tx.Order("application_class_code ASC").Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute stats")
	}

	return helper.JsonOK(c, "ok", rows)
}

package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"qcm_backend/internals/constants"
	appModel "qcm_backend/internals/features/admissions/applications/model"
	appService "qcm_backend/internals/features/admissions/applications/service"
	classModel "qcm_backend/internals/features/admissions/classes/model"
	"qcm_backend/internals/features/admissions/intake/dto"
	"qcm_backend/internals/features/admissions/intake/parser"
	"qcm_backend/internals/features/admissions/intake/service"
	"qcm_backend/internals/features/admissions/intake/validation"
	helper "qcm_backend/internals/helpers"
)

/* ================= Controller & Constructor ================= */

type IntakeController struct {
	DB       *gorm.DB
	Sessions *service.SessionStore
}

func NewIntakeController(db *gorm.DB) *IntakeController {
	return &IntakeController{DB: db, Sessions: service.DefaultStore}
}

var validate = validator.New()

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

func (ctl *IntakeController) loadActiveClass(code string) (*classModel.ClassModel, error) {
	var cls classModel.ClassModel
	err := ctl.DB.
		Where("LOWER(class_code) = LOWER(?) AND class_deleted_at IS NULL", code).
		First(&cls).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}
	return &cls, nil
}

/* ================= Handlers ================= */

// POST /api/u/intake/parse
// Splits a raw paste into candidate applications, parses each one and
// opens a review session over the results.
func (ctl *IntakeController) ParseIntake(c *fiber.Ctx) error {
	var req dto.ParseIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	classCode := strings.ToUpper(strings.TrimSpace(req.ClassCode))

	parsed := parser.SplitApplications(req.Text)
	if len(parsed) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "No application could be parsed from the text")
	}

	// fall back to the class code found inside the text itself
	if classCode == "" {
		for i := range parsed {
			if cc := strings.TrimSpace(parsed[i].Parsed.ClassCode); cc != "" {
				classCode = strings.ToUpper(cc)
				break
			}
		}
	}
	if classCode != "" {
		if _, err := ctl.loadActiveClass(classCode); err != nil {
			return err
		}
		if !classInScope(c, classCode) {
			return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
		}
	}

	items := make([]*parser.ParsedApplication, 0, len(parsed))
	for i := range parsed {
		items = append(items, &parsed[i])
	}

	session := ctl.Sessions.Create(classCode, items)
	log.Printf("[INFO] 📥 intake parse: session=%s items=%d class=%s", session.SessionID, len(items), classCode)

	return helper.JsonCreated(c, "Text parsed", dto.NewIntakeSessionResponse(session))
}

// GET /api/u/intake/sessions/:id
func (ctl *IntakeController) GetSession(c *fiber.Ctx) error {
	session, ok := ctl.Sessions.Get(strings.TrimSpace(c.Params("id")))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Session not found or expired")
	}
	return helper.JsonOK(c, "ok", dto.NewIntakeSessionResponse(session))
}

// POST /api/u/intake/validate
// Runs the class rules over one parsed application. Warnings are advisory;
// the caller may still submit.
func (ctl *IntakeController) ValidateIntake(c *fiber.Ctx) error {
	var req dto.ValidateIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	cls, err := ctl.loadActiveClass(strings.ToUpper(strings.TrimSpace(req.ClassCode)))
	if err != nil {
		return err
	}

	warnings := validation.Validate(req.Parsed, &cls.ClassValidationRules)
	resp := dto.ValidateIntakeResponse{Result: validation.NewResult(warnings)}

	// duplicate lookup is best effort: a DB hiccup must not block review
	count, dupErr := service.CountClassDuplicates(
		ctl.DB,
		cls.ClassCode,
		req.Parsed.StudentDetails.FullName,
		req.Parsed.StudentDetails.Mobile,
	)
	if dupErr != nil {
		log.Printf("[WARN] ⚠️ duplicate check failed for class=%s: %v", cls.ClassCode, dupErr)
		resp.DuplicateCheckNote = "could not verify duplicates"
	} else {
		resp.DuplicateCount = count
	}

	return helper.JsonOK(c, "ok", resp)
}

// POST /api/u/intake/duplicates
// Global lookup across all classes by mobile tail or email.
func (ctl *IntakeController) FindDuplicates(c *fiber.Ctx) error {
	var req dto.DuplicateLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if strings.TrimSpace(req.Mobile) == "" && strings.TrimSpace(req.Email) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Either mobile or email is required")
	}

	matches, err := service.FindDuplicates(ctl.DB, req.FullName, req.Mobile, req.Email)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to search duplicates")
	}
	if matches == nil {
		matches = []service.DuplicateMatch{}
	}
	return helper.JsonOK(c, "ok", matches)
}

// POST /api/u/intake/sessions/:id/items/:itemID/submit
// Persists one reviewed item as an application and advances the session.
func (ctl *IntakeController) SubmitItem(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.Params("id"))
	tempID := strings.TrimSpace(c.Params("itemID"))

	var req dto.SubmitItemRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
		}
	}

	// the claim moves the item to submitting under the store lock, so a
	// concurrent submit of the same item conflicts instead of double-saving
	session, item, err := ctl.Sessions.Claim(sessionID, tempID)
	if err != nil {
		return err
	}
	defer ctl.Sessions.Release(sessionID, tempID)

	parsed := item.Parsed
	if req.Parsed != nil {
		parsed = req.Parsed
	}

	classCode := strings.ToUpper(strings.TrimSpace(parsed.ClassCode))
	if classCode == "" {
		classCode = strings.ToUpper(strings.TrimSpace(session.ClassCode))
	}
	if classCode == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Class code is missing from the application")
	}

	cls, err := ctl.loadActiveClass(classCode)
	if err != nil {
		return err
	}
	if !classInScope(c, cls.ClassCode) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	// warnings computed at submit time are stored with the row
	warnings := validation.NewResult(validation.Validate(parsed, &cls.ClassValidationRules)).Warnings
	warnJSON, mErr := sonic.Marshal(warnings)
	if mErr != nil {
		warnJSON = []byte("[]")
	}

	m := &appModel.ApplicationModel{
		ApplicationClassCode:          cls.ClassCode,
		ApplicationStatus:             appModel.StatusPending,
		ApplicationStudentDetails:     parsed.StudentDetails,
		ApplicationOtherDetails:       parsed.OtherDetails,
		ApplicationHometownDetails:    parsed.HometownDetails,
		ApplicationCurrentResidence:   parsed.CurrentResidence,
		ApplicationReferredBy:         parsed.ReferredBy,
		ApplicationRemarks:            req.Remarks,
		ApplicationCallResponse:       req.CallResponse,
		ApplicationStudentNature:      req.StudentNature,
		ApplicationStudentCategory:    req.StudentCategory,
		ApplicationFollowUpBy:         req.FollowUpBy,
		ApplicationNaqeeb:             req.Naqeeb,
		ApplicationNaqeebResponse:     req.NaqeebResponse,
		ApplicationValidationWarnings: datatypes.JSON(warnJSON),
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

	id, err := appService.NextApplicationID(tx, cls.ClassCode)
	if err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate application id")
	}
	m.ApplicationID = id

	if err := tx.Create(m).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create application")
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	session, err = ctl.Sessions.Transition(sessionID, tempID, parser.ReviewSubmitted)
	if err != nil {
		// the row is already saved; report the session problem but keep the id
		log.Printf("[WARN] ⚠️ session transition failed after create id=%s: %v", m.ApplicationID, err)
	}

	resp := dto.SubmitItemResponse{
		ApplicationID: m.ApplicationID,
		SessionID:     sessionID,
		TempID:        tempID,
		Status:        parser.ReviewSubmitted,
	}
	if session != nil {
		resp.NextTempID = session.NextPending()
		resp.PendingCount = session.PendingCount()
	}

	return helper.JsonCreated(c, "Application submitted", resp)
}

// POST /api/u/intake/sessions/:id/items/:itemID/cancel
func (ctl *IntakeController) CancelItem(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.Params("id"))
	tempID := strings.TrimSpace(c.Params("itemID"))

	session, err := ctl.Sessions.Transition(sessionID, tempID, parser.ReviewCancelled)
	if err != nil {
		return err
	}

	return helper.JsonOK(c, "Item cancelled", fiber.Map{
		"session_id":    sessionID,
		"temp_id":       tempID,
		"status":        parser.ReviewCancelled,
		"next_temp_id":  session.NextPending(),
		"pending_count": session.PendingCount(),
	})
}

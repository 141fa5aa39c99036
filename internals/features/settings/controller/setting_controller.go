package controller

import (
	"errors"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"qcm_backend/internals/features/settings/model"
	helper "qcm_backend/internals/helpers"
)

type SettingController struct {
	DB *gorm.DB
}

func NewSettingController(db *gorm.DB) *SettingController {
	return &SettingController{DB: db}
}

var settingKeyRe = regexp.MustCompile(`^[a-z0-9_.-]{1,60}$`)

// GET /api/u/settings
func (ctl *SettingController) ListSettings(c *fiber.Ctx) error {
	var rows []model.AppSettingModel
	if err := ctl.DB.Order("setting_key ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch settings")
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/u/settings/:key
func (ctl *SettingController) GetSetting(c *fiber.Ctx) error {
	key := strings.ToLower(strings.TrimSpace(c.Params("key")))

	var row model.AppSettingModel
	if err := ctl.DB.First(&row, "setting_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Setting not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch setting")
	}
	return helper.JsonOK(c, "ok", row)
}

// PUT /api/a/settings/:key
// Upserts the raw JSON body as the setting value.
func (ctl *SettingController) PutSetting(c *fiber.Ctx) error {
	key := strings.ToLower(strings.TrimSpace(c.Params("key")))
	if !settingKeyRe.MatchString(key) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid setting key")
	}

	body := c.Body()
	var probe any
	if err := sonic.Unmarshal(body, &probe); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Value must be valid JSON")
	}

	row := model.AppSettingModel{
		SettingKey:   key,
		SettingValue: datatypes.JSON(body),
	}
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_updated_at"}),
	}).Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save setting")
	}

	return helper.JsonUpdated(c, "Setting saved", row)
}

// DELETE /api/a/settings/:key
func (ctl *SettingController) DeleteSetting(c *fiber.Ctx) error {
	key := strings.ToLower(strings.TrimSpace(c.Params("key")))

	res := ctl.DB.Delete(&model.AppSettingModel{}, "setting_key = ?", key)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete setting")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Setting not found")
	}
	return helper.JsonDeleted(c, "Setting deleted", fiber.Map{"setting_key": key})
}

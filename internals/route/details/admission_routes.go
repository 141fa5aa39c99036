// file: internals/route/details/admission_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationController "qcm_backend/internals/features/admissions/applications/controller"
	intakeController "qcm_backend/internals/features/admissions/intake/controller"
	settingController "qcm_backend/internals/features/settings/controller"
	"qcm_backend/internals/middlewares"
)

// AdmissionRoutes wires applications, the intake pipeline and settings.
func AdmissionRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB) {
	appCtl := applicationController.NewApplicationController(db)
	intakeCtl := intakeController.NewIntakeController(db)
	settingCtl := settingController.NewSettingController(db)

	// ---- applications CRUD ----
	user.Get("/applications", appCtl.ListApplications)
	user.Get("/applications/stats", appCtl.Stats)
	user.Get("/applications/:id", appCtl.GetApplicationByID)
	user.Post("/applications", appCtl.CreateApplication)
	user.Put("/applications/:id", appCtl.UpdateApplication)
	user.Patch("/applications/:id/status", appCtl.UpdateStatus)
	user.Delete("/applications/:id", appCtl.DeleteApplication)

	// ---- free-text intake pipeline ----
	intake := user.Group("/intake", middlewares.IntakeRateLimiter())
	intake.Post("/parse", intakeCtl.ParseIntake)
	intake.Post("/validate", intakeCtl.ValidateIntake)
	intake.Post("/duplicates", intakeCtl.FindDuplicates)
	intake.Get("/sessions/:id", intakeCtl.GetSession)
	intake.Post("/sessions/:id/items/:itemID/submit", intakeCtl.SubmitItem)
	intake.Post("/sessions/:id/items/:itemID/cancel", intakeCtl.CancelItem)

	// ---- settings ----
	user.Get("/settings", settingCtl.ListSettings)
	user.Get("/settings/:key", settingCtl.GetSetting)
	admin.Put("/settings/:key", settingCtl.PutSetting)
	admin.Delete("/settings/:key", settingCtl.DeleteSetting)
}

// file: internals/route/details/class_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "qcm_backend/internals/features/admissions/classes/controller"
)

// ClassRoutes wires the class catalog. Reads sit on the authenticated
// group plus a public template endpoint; writes are admin only.
func ClassRoutes(public fiber.Router, user fiber.Router, admin fiber.Router, db *gorm.DB) {
	ctl := classController.NewClassController(db)

	// active catalog and templates are public so the intake form can be shared
	public.Get("/classes", ctl.ListActiveClasses)
	public.Get("/classes/:code/template", ctl.GetClassTemplate)

	user.Get("/classes", ctl.ListClasses)
	user.Get("/classes/:code", ctl.GetClassByCode)
	user.Get("/classes/:code/template", ctl.GetClassTemplate)

	admin.Post("/classes", ctl.CreateClass)
	admin.Put("/classes/:code", ctl.UpdateClass)
	admin.Delete("/classes/:code", ctl.SoftDeleteClass)
}

// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"qcm_backend/internals/constants"
	authMiddleware "qcm_backend/internals/middlewares/auth"
	routeDetails "qcm_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("this area"), constants.RoleAdmin),
	)

	// ===================== FEATURES =====================
	routeDetails.ClassRoutes(public, user, admin, db)
	routeDetails.AdmissionRoutes(user, admin, db)
	routeDetails.AdminRoutes(admin, db)

	// ===================== HEALTH =====================
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})
}

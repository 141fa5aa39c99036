package seeds

import (
	"gorm.io/gorm"

	classes "qcm_backend/internals/seeds/classes"
	users "qcm_backend/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	users.SeedAdminUser(db)
	classes.SeedClassesFromJSON(db, "internals/seeds/classes/data_classes.json")
}

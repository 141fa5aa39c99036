package classes

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	classModel "qcm_backend/internals/features/admissions/classes/model"
)

type ClassSeed struct {
	ClassCode        string                     `json:"class_code"`
	ClassName        string                     `json:"class_name"`
	ClassDescription *string                    `json:"class_description"`
	ClassTemplate    *string                    `json:"class_template"`
	ValidationRules  classModel.ValidationRules `json:"class_validation_rules"`
}

// SeedClassesFromJSON inserts classes that do not exist yet; existing codes
// are skipped so the seed can run on every boot.
func SeedClassesFromJSON(db *gorm.DB, filePath string) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("ℹ️ Class seed file %s not readable, skipping: %v", filePath, err)
		return
	}

	var seeds []ClassSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		log.Printf("❌ Failed to decode class seed JSON: %v", err)
		return
	}

	var existing []string
	if err := db.Model(&classModel.ClassModel{}).
		Pluck("class_code", &existing).Error; err != nil {
		log.Printf("❌ Failed to list existing classes: %v", err)
		return
	}
	existingSet := make(map[string]bool, len(existing))
	for _, code := range existing {
		existingSet[code] = true
	}

	var rows []classModel.ClassModel
	for _, s := range seeds {
		if existingSet[s.ClassCode] {
			log.Printf("ℹ️ Class '%s' already exists, skipped", s.ClassCode)
			continue
		}
		rows = append(rows, classModel.ClassModel{
			ClassCode:            s.ClassCode,
			ClassName:            s.ClassName,
			ClassDescription:     s.ClassDescription,
			ClassTemplate:        s.ClassTemplate,
			ClassValidationRules: s.ValidationRules,
			ClassIsActive:        true,
		})
	}
	if len(rows) == 0 {
		log.Println("ℹ️ No new classes to seed")
		return
	}

	if err := db.Create(&rows).Error; err != nil {
		log.Printf("❌ Failed to insert class seeds: %v", err)
		return
	}
	log.Printf("✅ %d class(es) seeded", len(rows))
}

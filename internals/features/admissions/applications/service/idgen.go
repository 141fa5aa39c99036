// file: internals/features/admissions/applications/service/idgen.go
package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"qcm_backend/internals/features/admissions/applications/model"
)

// FormatApplicationID builds the human-readable id from a class code and a
// sequence number: ("QTR-B04", 12) -> "QTR-B04-012".
func FormatApplicationID(classCode string, seq int) string {
	return fmt.Sprintf("%s-%03d", strings.ToUpper(classCode), seq)
}

// SequenceFromID extracts the numeric tail of an application id. Returns 0
// when the id does not carry one.
func SequenceFromID(id string) int {
	idx := strings.LastIndex(id, "-")
	if idx < 0 || idx == len(id)-1 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// NextApplicationID reserves the next sequence number in the class
// namespace. Must run inside a transaction: the current max row is locked so
// two concurrent submissions cannot mint the same id. Ids are ordered by
// length before text so a four-digit sequence sorts after a padded
// three-digit one.
func NextApplicationID(tx *gorm.DB, classCode string) (string, error) {
	classCode = strings.ToUpper(strings.TrimSpace(classCode))
	if classCode == "" {
		return "", errors.New("class code is required for id generation")
	}

	var last model.ApplicationModel
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_class_code = ?", classCode).
		Order("length(application_id) DESC, application_id DESC").
		Select("application_id").
		Take(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	seq := 1
	if err == nil {
		seq = SequenceFromID(last.ApplicationID) + 1
	}
	return FormatApplicationID(classCode, seq), nil
}

// file: internals/features/admissions/intake/service/duplicate_service.go
package service

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DuplicateMatch is a read-only projection shown to the operator before
// committing a submission. Never persisted.
type DuplicateMatch struct {
	ApplicationID string    `json:"application_id" gorm:"column:application_id"`
	StudentName   string    `json:"student_name" gorm:"column:student_name"`
	Email         string    `json:"email" gorm:"column:email"`
	Mobile        string    `json:"mobile" gorm:"column:mobile"`
	ClassCode     string    `json:"class_code" gorm:"column:application_class_code"`
	Status        string    `json:"status" gorm:"column:application_status"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:application_created_at"`
}

/* ================= Pure matching rules ================= */

// minMobileDigits is the shortest digit string treated as a dialable
// number. Local Qatari subscriber numbers carry eight digits; anything
// shorter is a fragment and never matches.
const minMobileDigits = 8

// NormalizeMobile strips everything but digits.
func NormalizeMobile(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MobileTailMatches compares two mobile numbers after stripping
// non-digits. When both sides carry at least ten digits the last ten
// must be equal, which tolerates country-code prefixes. When one side
// is shorter (a number stored without a country code) its full digit
// string must be a suffix of the other side's last ten digits. Fewer
// than eight digits on either side never matches.
func MobileTailMatches(a, b string) bool {
	da := NormalizeMobile(a)
	db := NormalizeMobile(b)
	if len(da) < minMobileDigits || len(db) < minMobileDigits {
		return false
	}
	ta := lastDigits(da, 10)
	tb := lastDigits(db, 10)
	if len(da) >= 10 && len(db) >= 10 {
		return ta == tb
	}
	if len(da) < len(db) {
		return strings.HasSuffix(tb, da)
	}
	return strings.HasSuffix(ta, db)
}

func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// EmailMatches is a case-insensitive exact comparison.
func EmailMatches(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

/* ================= Cross-record checker ================= */

const mobileDigitsExpr = `regexp_replace(COALESCE(application_student_details->>'mobile', ''), '[^0-9]', '', 'g')`

// mobileMatchPredicate mirrors MobileTailMatches in SQL against the
// stored application mobile. Returns an empty predicate when the
// candidate carries too few digits to compare.
func mobileMatchPredicate(mobile string) (string, []interface{}) {
	d := NormalizeMobile(mobile)
	if len(d) < minMobileDigits {
		return "", nil
	}
	tail := lastDigits(d, 10)
	pred := fmt.Sprintf(`length(%[1]s) >= %[2]d AND (
		right(%[1]s, 10) = ?
		OR (length(%[1]s) < 10 AND ? LIKE '%%' || %[1]s)`, mobileDigitsExpr, minMobileDigits)
	args := []interface{}{tail, tail}
	if len(d) < 10 {
		pred += fmt.Sprintf(`
		OR right(%s, 10) LIKE '%%' || ?`, mobileDigitsExpr)
		args = append(args, tail)
	}
	pred += `)`
	return "(" + pred + ")", args
}

// FindDuplicates scans the whole applications table (all classes, all
// statuses) for records whose mobile or email matches the candidate.
// OR semantics: either rule flags the record. Results warn the operator,
// they never block submission.
func FindDuplicates(db *gorm.DB, fullName, mobile, email string) ([]DuplicateMatch, error) {
	mobilePred, mobileArgs := mobileMatchPredicate(mobile)
	email = strings.TrimSpace(email)

	if mobilePred == "" && email == "" {
		return []DuplicateMatch{}, nil
	}

	q := db.Table("applications").
		Select(`application_id,
			application_class_code,
			application_status,
			application_created_at,
			COALESCE(application_student_details->>'fullName', '') AS student_name,
			COALESCE(application_student_details->>'mobile', '')   AS mobile,
			COALESCE(application_other_details->>'email', '')      AS email`)

	const emailPred = `lower(COALESCE(application_other_details->>'email', '')) = lower(?)`
	switch {
	case mobilePred != "" && email != "":
		q = q.Where(mobilePred+" OR "+emailPred, append(mobileArgs, email)...)
	case mobilePred != "":
		q = q.Where(mobilePred, mobileArgs...)
	default:
		q = q.Where(emailPred, email)
	}

	var matches []DuplicateMatch
	if err := q.Order("application_created_at DESC").Scan(&matches).Error; err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []DuplicateMatch{}
	}
	return matches, nil
}

// CountClassDuplicates backs the in-form duplicate warning: same class,
// exact case-insensitive name plus exact mobile, rejected applications
// excluded. Scope and rules differ from FindDuplicates; the two checks
// answer different questions.
func CountClassDuplicates(db *gorm.DB, classCode, fullName, mobile string) (int64, error) {
	fullName = strings.TrimSpace(fullName)
	mobile = strings.TrimSpace(mobile)
	if fullName == "" || mobile == "" {
		return 0, nil
	}
	var n int64
	err := db.Table("applications").
		Where("application_class_code = ?", classCode).
		Where("application_status <> ?", "rejected").
		Where("lower(COALESCE(application_student_details->>'fullName', '')) = lower(?)", fullName).
		Where("COALESCE(application_student_details->>'mobile', '') = ?", mobile).
		Count(&n).Error
	return n, err
}

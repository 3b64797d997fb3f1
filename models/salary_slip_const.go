package models

import "regexp"

type SalarySlipStatus string

const (
	// SalarySlipStatusDraft пока не используется
	SalarySlipStatusDraft     SalarySlipStatus = "draft"
	SalarySlipStatusPublished SalarySlipStatus = "published"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// IsValidMonth формат YYYY-MM
func IsValidMonth(month string) bool {
	return monthPattern.MatchString(month)
}

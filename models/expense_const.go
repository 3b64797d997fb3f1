package models

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

var expenseStatusHumanName = map[ExpenseStatus]string{
	ExpenseStatusPending:  "На рассмотрении",
	ExpenseStatusApproved: "Одобрен",
	ExpenseStatusRejected: "Отклонен",
}

func (s ExpenseStatus) ToHuman() string {
	if human, exist := expenseStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// AllowReview переход возможен только из pending, approved и rejected терминальные
func (s ExpenseStatus) AllowReview() bool {
	return s == ExpenseStatusPending
}

type ExpenseCategory string

const (
	ExpenseCategoryTravel        ExpenseCategory = "travel"
	ExpenseCategoryFood          ExpenseCategory = "food"
	ExpenseCategoryAccommodation ExpenseCategory = "accommodation"
	ExpenseCategoryUtilities     ExpenseCategory = "utilities"
	ExpenseCategoryOther         ExpenseCategory = "other"
)

var expenseCategoryHumanName = map[ExpenseCategory]string{
	ExpenseCategoryTravel:        "Командировки",
	ExpenseCategoryFood:          "Питание",
	ExpenseCategoryAccommodation: "Проживание",
	ExpenseCategoryUtilities:     "Коммунальные услуги",
	ExpenseCategoryOther:         "Прочее",
}

func (c ExpenseCategory) ToHuman() string {
	if human, exist := expenseCategoryHumanName[c]; exist {
		return human
	}
	return string(c)
}

func (c ExpenseCategory) IsValid() bool {
	_, ok := expenseCategoryHumanName[c]
	return ok
}

const DefaultRejectionReason = "No reason provided"

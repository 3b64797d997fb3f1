package xlsexport

import (
	"payroll-backend/models"
	expenseapimodels "payroll-backend/models/api/expense"
	usersapimodels "payroll-backend/models/api/users"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportExpenses(t *testing.T) {
	reviewedAt := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	list := []expenseapimodels.ExpenseView{
		{
			Employee:    usersapimodels.UserShortView{Name: "John Doe", Email: "john@example.com"},
			Month:       "2025-01",
			Category:    models.ExpenseCategoryTravel,
			Description: "taxi",
			Amount:      120.5,
			Status:      models.ExpenseStatusApproved,
			ReviewedBy:  &usersapimodels.UserShortView{Name: "Admin"},
			ReviewedAt:  &reviewedAt,
		},
		{
			Employee:    usersapimodels.UserShortView{Name: "Jane Roe", Email: "jane@example.com"},
			Month:       "2025-02",
			Category:    models.ExpenseCategoryFood,
			Description: "lunch",
			Amount:      15,
			Status:      models.ExpenseStatusPending,
		},
	}
	buf, err := impl{}.ExportExpenses(list)
	require.Nil(t, err)

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer f.Close()

	rows, err := f.GetRows(expenseSheet)
	require.Nil(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, expenseHeaders[0], rows[0][0])
	require.Equal(t, "John Doe", rows[1][0])
	require.Equal(t, "Командировки", rows[1][3])
	require.Equal(t, "120.5", rows[1][5])
	require.Equal(t, "Одобрен", rows[1][6])
	require.Equal(t, "Admin", rows[1][7])
	require.Equal(t, "20.01.2025", rows[1][8])
	require.Equal(t, "Jane Roe", rows[2][0])
	require.Equal(t, "На рассмотрении", rows[2][6])
}

func TestExportEmptyList(t *testing.T) {
	buf, err := impl{}.ExportExpenses(nil)
	require.Nil(t, err)
	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer f.Close()
	rows, err := f.GetRows(expenseSheet)
	require.Nil(t, err)
	require.Len(t, rows, 1)
}

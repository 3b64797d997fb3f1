package pdfexport

import (
	"bytes"
	salaryslipapimodels "payroll-backend/models/api/salary-slip"
	usersapimodels "payroll-backend/models/api/users"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSalarySlip(t *testing.T) {
	slip := salaryslipapimodels.SalarySlipView{
		ID:          "slip-1",
		Employee:    usersapimodels.UserShortView{ID: "emp-1", Name: "John Doe", Email: "john@example.com"},
		Month:       "2025-01",
		BasicSalary: 5000,
		Allowances:  200,
		Deductions:  150,
		NetSalary:   5050,
	}
	body, err := GenerateSalarySlip(slip)
	require.Nil(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	require.Equal(t, "salary-slip-2025-01.pdf", FileName(slip.Month))
	require.Equal(t, "$5050.00", formatAmount(slip.NetSalary))
}

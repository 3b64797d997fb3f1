package pdfexport

import (
	"bytes"
	"fmt"
	salaryslipapimodels "payroll-backend/models/api/salary-slip"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// now подменяется в тестах
var now = time.Now

// GenerateSalarySlip базовый шрифт Helvetica, текст только latin-1
func GenerateSalarySlip(slip salaryslipapimodels.SalarySlipView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateSalarySlip panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "SALARY SLIP", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	line := func(text string) {
		pdf.CellFormat(0, 7, tr(text), "", 1, "L", false, 0, "")
	}
	line(fmt.Sprintf("Employee Name: %s", slip.Employee.Name))
	line(fmt.Sprintf("Email: %s", slip.Employee.Email))
	line(fmt.Sprintf("Month: %s", slip.Month))
	pdf.Ln(5)

	section := func(title string) {
		pdf.SetFont("Helvetica", "BU", 14)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
	}
	section("Earnings")
	line(fmt.Sprintf("Basic Salary: %s", formatAmount(slip.BasicSalary)))
	line(fmt.Sprintf("Allowances: %s", formatAmount(slip.Allowances)))
	pdf.Ln(5)

	section("Deductions")
	line(fmt.Sprintf("Deductions: %s", formatAmount(slip.Deductions)))
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Net Salary: %s", formatAmount(slip.NetSalary)), "", 1, "R", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on: %s", now().Format("02.01.2006")), "", 1, "C", false, 0, "")

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

func FileName(month string) string {
	return fmt.Sprintf("salary-slip-%s.pdf", month)
}

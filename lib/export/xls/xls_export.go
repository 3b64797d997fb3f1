package xlsexport

import (
	"bytes"
	expenseapimodels "payroll-backend/models/api/expense"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportExpenses(list []expenseapimodels.ExpenseView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const expenseSheet = "Расходы"

var expenseHeaders = []string{"Сотрудник", "Почта", "Месяц", "Категория", "Описание", "Сумма", "Статус", "Проверил", "Дата проверки", "Причина отклонения"}

func (i impl) ExportExpenses(list []expenseapimodels.ExpenseView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, expenseHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		_, err = writeExpenseData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, expenseSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

func writeExpenseData(f *excelize.File, sheet string, list []expenseapimodels.ExpenseView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(expenseHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.Employee.Name,
			item.Employee.Email,
			item.Month,
			item.Category.ToHuman(),
			item.Description,
			item.Amount,
			item.Status.ToHuman(),
			nil,
			nil,
			item.RejectionReason,
		}
		if item.ReviewedBy != nil {
			values[7] = item.ReviewedBy.Name
		}
		if item.ReviewedAt != nil {
			values[8] = item.ReviewedAt.Format("02.01.2006")
		}
		for idx, value := range values {
			if value == nil {
				continue
			}
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

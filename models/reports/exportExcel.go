package reports

import (
	"fmt"
	"io"

	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/xuri/excelize/v2"
)

const (
	transactionSheet = "Transactions"
	summarySheet     = "Summary"
	dateLayout       = "2006-01-02 15:04:05"
)

var transactionHeadings = []string{"Id", "Title", "Type", "Category", "Value", "CreatedAt"}

func cell(col int, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// ExportTransactions writes an xlsx workbook with one row per transaction and a
// summary sheet holding the balance and per-category totals.
func ExportTransactions(w io.Writer, transactions []*models.Transaction, balance models.Balance, categories []*CategorySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionSheet); err != nil {
		return err
	}
	for i, h := range transactionHeadings {
		f.SetCellValue(transactionSheet, cell(i+1, 1), h)
	}
	for i, t := range transactions {
		row := i + 2
		categoryTitle := ""
		if t.Category != nil {
			categoryTitle = t.Category.Title
		}
		f.SetCellValue(transactionSheet, cell(1, row), t.ID)
		f.SetCellValue(transactionSheet, cell(2, row), t.Title)
		f.SetCellValue(transactionSheet, cell(3, row), t.Type.String())
		f.SetCellValue(transactionSheet, cell(4, row), categoryTitle)
		f.SetCellValue(transactionSheet, cell(5, row), t.Value.InexactFloat64())
		f.SetCellValue(transactionSheet, cell(6, row), t.CreatedAt.Format(dateLayout))
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	f.SetCellValue(summarySheet, "A1", "Income")
	f.SetCellValue(summarySheet, "B1", balance.Income.InexactFloat64())
	f.SetCellValue(summarySheet, "A2", "Outcome")
	f.SetCellValue(summarySheet, "B2", balance.Outcome.InexactFloat64())
	f.SetCellValue(summarySheet, "A3", "Total")
	f.SetCellValue(summarySheet, "B3", balance.Total.InexactFloat64())

	f.SetCellValue(summarySheet, "A5", "Category")
	f.SetCellValue(summarySheet, "B5", "Income")
	f.SetCellValue(summarySheet, "C5", "Outcome")
	f.SetCellValue(summarySheet, "D5", "Count")
	for i, c := range categories {
		row := i + 6
		f.SetCellValue(summarySheet, cell(1, row), c.CategoryTitle)
		f.SetCellValue(summarySheet, cell(2, row), c.Income.InexactFloat64())
		f.SetCellValue(summarySheet, cell(3, row), c.Outcome.InexactFloat64())
		f.SetCellValue(summarySheet, cell(4, row), c.TransactionCount)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

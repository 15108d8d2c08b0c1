package reports

import (
	"errors"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
)

// ParseTransactionsCSV reads a file with a title,type,value,category header.
func ParseTransactionsCSV(r io.Reader) ([]*models.TransactionImportRow, error) {
	var rows []*models.TransactionImportRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, utils.InvalidArgument("the import file is empty")
		}
		return nil, utils.InvalidArgument("invalid csv: %v", err)
	}
	if len(rows) == 0 {
		return nil, utils.InvalidArgument("the import file has no rows")
	}
	return rows, nil
}

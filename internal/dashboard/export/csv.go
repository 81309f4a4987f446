package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV emits the title row, the header and every data row.
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{table.Title}); err != nil {
		return err
	}
	if err := writer.Write(table.Header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Package csvtable tokenizes raw CSV text into rows and header-keyed records.
// The scanner is deliberately hand-written: quoted cells may contain commas,
// newlines and doubled quotes, headers vary between source spreadsheets, and
// fully blank lines must disappear without complaint.
package csvtable

import "strings"

// Record is one data row keyed by the trimmed header row. Columns missing in a
// short row are present with an empty value.
type Record map[string]string

// Rows tokenizes CSV content into rows of trimmed cells. A leading BOM and all
// carriage returns are stripped first; rows whose cells are all empty after
// trimming are dropped.
func Rows(content string) [][]string {
	cleaned := strings.TrimPrefix(content, "\ufeff")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")

	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		for _, v := range row {
			if len(v) > 0 {
				rows = append(rows, row)
				break
			}
		}
		row = nil
	}

	for i := 0; i < len(cleaned); i++ {
		c := cleaned[i]

		if c == '"' {
			if inQuotes && i+1 < len(cleaned) && cleaned[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if c == ',' && !inQuotes {
			endCell()
			continue
		}

		if c == '\n' && !inQuotes {
			endCell()
			endRow()
			continue
		}

		cell.WriteByte(c)
	}

	if cell.Len() > 0 || len(row) > 0 {
		endCell()
		endRow()
	}

	return rows
}

// Records maps data rows onto the first row's headers.
func Records(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}

	headers := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

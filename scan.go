package fluentpg

import (
	"database/sql"
)

// scanRows, bir *sql.Rows sonucunu Row listesine çevirir.
//
// Sürücünün []byte döndürdüğü kolonlar (text, varchar, numeric...) string'e
// normalize edilir; map içinde yaşayan byte dilimleri bir sonraki Scan
// çağrısında geçersizleşeceği için bu kopya zorunludur. Sonuç boşsa boş
// (nil olmayan) liste döner.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

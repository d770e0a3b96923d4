package database

import "database/sql"

// QueryResult holds the fully materialised result of an Execute call: the
// ordered column names and the rows in row-major order.  Every row has the
// same arity as Columns.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// scanResult drains a rows cursor into a QueryResult.  Columns and rows are
// captured eagerly, while the cursor is still valid; the caller closes the
// cursor.
func scanResult(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, values)
	}

	return result, rows.Err()
}

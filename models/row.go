package models

// Row is a single record of a resource table: column name → scalar value.
// Values originate either from the database driver (int64, float64, bool,
// string, time.Time, nil) or from a decoded JSON request body (string,
// float64, bool, nil).
type Row map[string]any

// Clone returns a shallow copy of the row. Values are scalars, so a shallow
// copy is enough to mutate one row without affecting the other.
func (r Row) Clone() Row {
	clone := make(Row, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// ID extracts the primary key of the row, tolerating the numeric types
// different drivers and JSON decoding produce.
func (r Row) ID() (int64, bool) {
	switch v := r["id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

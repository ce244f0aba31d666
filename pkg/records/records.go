// Package records defines the generic row representation passed between the
// storage and validation layers. Values are whatever the database driver
// produced: string, int64, or nil for SQL NULL.
package records

// Record is one table row keyed by column name.
type Record map[string]any

// String returns the value of column k as a string. The second return is
// false when the column is absent, NULL, or not a string.
func (r Record) String(k string) (string, bool) {
	v, ok := r[k]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the value of column k as an int64. The second return is false
// when the column is absent, NULL, or not an integer type.
func (r Record) Int(k string) (int64, bool) {
	v, ok := r[k]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	}
	return 0, false
}

// Float returns the value of column k as a float64, widening integer
// values. The second return is false when the column is absent, NULL, or not
// numeric.
func (r Record) Float(k string) (float64, bool) {
	if f, ok := r[k].(float64); ok {
		return f, true
	}
	if n, ok := r.Int(k); ok {
		return float64(n), true
	}
	return 0, false
}

// IsNull reports whether column k is absent or NULL.
func (r Record) IsNull(k string) bool {
	v, ok := r[k]
	return !ok || v == nil
}

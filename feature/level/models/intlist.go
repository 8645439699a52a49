package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// IntList stores a list of ids in a single text column as comma-separated
// decimals. An empty list round-trips as an empty string.
type IntList []int

// Value implements driver.Valuer.
func (l IntList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (l *IntList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into IntList", src)
	}

	if raw == "" {
		*l = IntList{}
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make(IntList, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid id list element %q: %w", part, err)
		}
		out = append(out, n)
	}
	*l = out
	return nil
}

// Clone returns an independent copy.
func (l IntList) Clone() IntList {
	if l == nil {
		return nil
	}
	out := make(IntList, len(l))
	copy(out, l)
	return out
}

// Contains reports whether id is present.
func (l IntList) Contains(id int) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

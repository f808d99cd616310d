package core

// convert.go provides type conversion functions from dataset text to PostgreSQL types.
//
// All ToPg* functions return pgtype values with Valid=false for empty or
// unparseable input. ConvertRow is stricter: a non-NULL value that does not
// convert is an error, so bad data never silently becomes NULL on load.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format.
// Matches integers and decimals; scientific notation is not supported.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or the NULL token.
func ToPgText(s string) pgtype.Text {
	if s == "" || s == `\N` {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgInt4 converts a decimal string to pgtype.Int4.
func ToPgInt4(s string) pgtype.Int4 {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Int4{Valid: false}
	}
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(i), Valid: true}
}

// ToPgNumeric converts a string to pgtype.Numeric.
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" || !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ToPgBool converts a string to pgtype.Bool.
// Accepts various representations: true/false, yes/no, t/f, y/n, 1/0.
func ToPgBool(s string) pgtype.Bool {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "true", "t", "yes", "y", "1":
		return pgtype.Bool{Bool: true, Valid: true}
	case "false", "f", "no", "n", "0":
		return pgtype.Bool{Bool: false, Valid: true}
	default:
		return pgtype.Bool{Valid: false}
	}
}

// ConvertValue converts one cell according to spec.
func ConvertValue(c Cell, spec FieldSpec) (any, error) {
	if !c.Valid {
		if !spec.Nullable {
			return nil, fmt.Errorf("required field %s is NULL", spec.Name)
		}
		switch spec.Type {
		case FieldInt:
			return pgtype.Int4{}, nil
		case FieldNumeric:
			return pgtype.Numeric{}, nil
		case FieldBool:
			return pgtype.Bool{}, nil
		default:
			return pgtype.Text{}, nil
		}
	}

	switch spec.Type {
	case FieldInt:
		v := ToPgInt4(c.String)
		if !v.Valid {
			return nil, fmt.Errorf("invalid number in %s: %q", spec.Name, c.String)
		}
		return v, nil
	case FieldNumeric:
		v := ToPgNumeric(c.String)
		if !v.Valid {
			return nil, fmt.Errorf("invalid number in %s: %q", spec.Name, c.String)
		}
		return v, nil
	case FieldBool:
		v := ToPgBool(c.String)
		if !v.Valid {
			return nil, fmt.Errorf("invalid boolean in %s: %q", spec.Name, c.String)
		}
		return v, nil
	default:
		return c, nil
	}
}

// ConvertRow converts a row of cells to COPY values using specs.
// The row and specs must be the same length.
func ConvertRow(row []Cell, specs []FieldSpec) ([]any, error) {
	if len(row) != len(specs) {
		return nil, fmt.Errorf("row has %d fields, expected %d", len(row), len(specs))
	}
	values := make([]any, len(row))
	for i, spec := range specs {
		v, err := ConvertValue(row[i], spec)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

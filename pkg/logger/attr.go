package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Function records the guarded function name under the key "function".
func Function(name string) slog.Attr {
	return slog.String("function", name)
}

// Boundary records which side of a function a dataset crossed under the
// key "boundary". Values are "in" for parameters and "out" for return
// values.
func Boundary(side string) slog.Attr {
	return slog.String("boundary", side)
}

// Shape records a dataset shape description under the key "shape".
func Shape(desc string) slog.Attr {
	return slog.String("shape", desc)
}

// Rows records a row count under the key "rows".
func Rows(n int) slog.Attr {
	return slog.Int("rows", n)
}

// Columns records column names under the key "columns".
func Columns(names []string) slog.Attr {
	return slog.Any("columns", names)
}

// Issues records the number of validation findings under the key "issues".
func Issues(n int) slog.Attr {
	return slog.Int("issues", n)
}

// Check records a value check name under the key "check".
func Check(name string) slog.Attr {
	return slog.String("check", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

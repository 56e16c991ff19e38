// Package util holds small helpers shared by conversion callbacks.
package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrUnsupportedType is returned by ConvertString for target types it
// does not know about.
var ErrUnsupportedType = errors.New("unsupported type conversion")

// ConvertString parses value into the variable data points to.
// Conversion callbacks use it to turn raw option values into typed
// entity fields; timestamps accept any layout dateparse recognizes.
func ConvertString(value string, data any) error {
	switch t := data.(type) {
	case *string:
		*t = value
	case *[]string:
		*t = strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == '|' || r == ' '
		})
	case *bool:
		val, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cannot parse %q as bool: %w", value, err)
		}
		*t = val
	case *int:
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cannot parse %q as int: %w", value, err)
		}
		*t = val
	case *int64:
		val, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as int64: %w", value, err)
		}
		*t = val
	case *uint64:
		val, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as uint64: %w", value, err)
		}
		*t = val
	case *float64:
		val, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as float: %w", value, err)
		}
		*t = val
	case *time.Time:
		val, err := dateparse.ParseLocal(value)
		if err != nil {
			return fmt.Errorf("cannot parse %q as time: %w", value, err)
		}
		*t = val
	case *time.Duration:
		val, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("cannot parse %q as duration: %w", value, err)
		}
		*t = val
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, t)
	}

	return nil
}

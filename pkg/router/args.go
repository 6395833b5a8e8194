package router

import (
	"errors"
	"strconv"
)

var errNoMatch = errors.New("path does not match route pattern")

// coerce converts one captured segment to the placeholder's Go type.
func coerce(value string, ph Placeholder) (interface{}, error) {
	switch ph.Type {
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, &ConversionError{Name: ph.Name, Type: ph.Type, Value: value, Cause: err}
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &ConversionError{Name: ph.Name, Type: ph.Type, Value: value, Cause: err}
		}
		return f, nil
	default:
		return value, nil
	}
}

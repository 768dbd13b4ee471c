package model

import "errors"

var (
	// ErrDuplicateColumnName is returned when a header contains duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrEmptyColumnName is returned when a header contains a blank column name
	ErrEmptyColumnName = errors.New("empty column name")

	// ErrNoColumns is returned when a table has no columns
	ErrNoColumns = errors.New("table has no columns")

	// ErrRowWidth is returned when a row does not have one value per column
	ErrRowWidth = errors.New("row width does not match header")
)

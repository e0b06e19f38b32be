package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrOutputMissing = errors.New(f("output missing"))

	// Image errors
	ErrImageTooLarge = errors.New(f("image larger than memory"))
	ErrNotBinary     = errors.New(f("not an 8-bit binary value"))
)

// ErrLine locates an image error at a line of the image text.
type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

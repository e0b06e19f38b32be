package io

import (
	"fmt"
	"io"
)

// Console prints register values in decimal, one per line.
type Console struct {
	Output io.Writer

	Lines int // Lines written since the last rewind.
}

var _ Channel = (*Console)(nil)

// Rewind restarts the line count; output already written stays written.
func (cc *Console) Rewind() {
	cc.Lines = 0
}

// Print writes the decimal value followed by a newline.
func (cc *Console) Print(value uint8) (err error) {
	if cc.Output == nil {
		err = ErrOutputMissing
		return
	}

	_, err = fmt.Fprintf(cc.Output, "%d\n", value)
	if err != nil {
		return
	}

	cc.Lines++
	return
}

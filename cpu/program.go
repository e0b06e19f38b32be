package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Link is a reference from a statement byte to a label, resolved once
// all labels are known.
type Link struct {
	Index int
	Label string
}

// Statement represents a line of assembled code with its source location
// and generated bytes.
type Statement struct {
	LineNo int
	Pc     int
	Words  []string
	Bytes  []uint8
	Links  []Link
}

// Program is the output of the assembler.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that generated the byte at the address.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, st := range prog.Statements {
		if int(pc) >= st.Pc && int(pc) < st.Pc+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(pc) - st.Pc,
			}
			break
		}
	}

	return
}

// Binary returns the program image.
func (prog *Program) Binary() (bins []uint8) {
	for pc, value := range prog.Bytes() {
		for len(bins) < int(pc) {
			bins = append(bins, 0)
		}
		bins = append(bins, value)
	}

	return
}

// Bytes iterates over the address and value of every program byte.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(pc uint16, value uint8) bool) {
		for _, st := range prog.Statements {
			pc := uint16(st.Pc)
			for n, value := range st.Bytes {
				if !yield(pc+uint16(n), value) {
					return
				}
			}
		}
	}
}

// WriteImage writes the program as a text image, with the source of each
// statement as a comment on its first byte.
func (prog *Program) WriteImage(output io.Writer) (err error) {
	wr := bufio.NewWriter(output)

	for _, st := range prog.Statements {
		for n, value := range st.Bytes {
			if n == 0 {
				_, err = fmt.Fprintf(wr, "%08b # %v\n", value, strings.Join(st.Words, " "))
			} else {
				_, err = fmt.Fprintf(wr, "%08b\n", value)
			}
			if err != nil {
				return
			}
		}
	}

	err = wr.Flush()
	return
}

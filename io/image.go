package io

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// IMAGE_SIZE is the largest image that fits in the machine's memory.
const IMAGE_SIZE = 256

// Image is a program image: the bytes placed at consecutive addresses
// starting at 0.
//
// The text form holds one base-2 byte per line. A '#' starts a comment.
type Image struct {
	Strict  bool // If set, lines that are not binary bytes are errors.
	Verbose bool // If set, logs skipped lines.

	Data []uint8
}

// Read replaces the image with the bytes parsed from the input text.
//
// Blank and comment-only lines are skipped. Other lines that do not hold
// an 8-bit binary value are skipped, unless Strict is set.
func (img *Image) Read(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrLine{LineNo: lineno, Line: line, Err: err}
		}
	}()

	img.Data = img.Data[:0]

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		text_comment := strings.SplitN(text, "#", 2)
		line = strings.TrimSpace(text_comment[0])
		if len(line) == 0 {
			continue
		}

		value, perr := strconv.ParseUint(line, 2, 8)
		if perr != nil {
			if img.Strict {
				err = ErrNotBinary
				return
			}
			if img.Verbose {
				log.Printf("image: %d: skipped '%v'", lineno, line)
			}
			continue
		}

		if len(img.Data) == IMAGE_SIZE {
			err = ErrImageTooLarge
			return
		}

		img.Data = append(img.Data, uint8(value))
	}

	line = ""
	err = scanner.Err()

	return
}

// ReadFile replaces the image with the contents of a text image file.
func (img *Image) ReadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = img.Read(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// Write writes the image in text form, one byte per line.
func (img *Image) Write(output io.Writer) (err error) {
	wr := bufio.NewWriter(output)
	for _, value := range img.Data {
		_, err = fmt.Fprintf(wr, "%08b\n", value)
		if err != nil {
			return
		}
	}

	err = wr.Flush()
	return
}

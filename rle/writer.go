package rle

import (
	"fmt"
	"io"
)

// Writer run-length encodes a stream of pixel values, one byte per pixel,
// each 0 or 1. Runs merge across Write calls so a run of identical pixels
// spanning several frames is emitted as a single token. Close must be called
// to flush the final run.
type Writer struct {
	w io.Writer

	count int
	bit   byte

	wrote bool
}

// NewWriter returns a Writer emitting tokens to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends pixel values to the encoded stream. Any value other than 0 is
// treated as 1.
func (e *Writer) Write(pixels []byte) error {
	for _, p := range pixels {
		var bit byte
		if p != 0 {
			bit = 1
		}
		if e.count > 0 && bit == e.bit {
			e.count++
			continue
		}
		if e.count > 0 {
			if err := e.flush(); err != nil {
				return err
			}
		}
		e.bit = bit
		e.count = 1
	}
	return nil
}

// Close flushes the current run. The Writer must not be used afterwards.
func (e *Writer) Close() error {
	if e.count == 0 {
		return nil
	}
	return e.flush()
}

func (e *Writer) flush() error {
	sep := " "
	if !e.wrote {
		sep = ""
	}
	if _, err := fmt.Fprintf(e.w, "%s%d:%d", sep, e.count, e.bit); err != nil {
		return err
	}
	e.wrote = true
	e.count = 0
	return nil
}

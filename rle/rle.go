/*
Package rle implements the run-length encoded bitstream used for monochrome
video clips.

The stream is ASCII text made up of tokens of the form <digits>:<bit> where
<digits> is zero or more decimal digits giving the run length (no digits means
a run of length zero), ':' is the mandatory separator and <bit> is exactly the
character '0' or '1'. Any amount of spaces, tabs or newlines may follow a
token before the next one. The stream is consumed strictly left to right and
is never rewound.
*/
package rle

import "errors"

var (
	// ErrMissingSeparator is returned by Err when a token has no ':'
	// between the run length and the bit value.
	ErrMissingSeparator = errors.New("rle: missing separator")

	// ErrBadBit is returned by Err when the character after the separator
	// is not '0' or '1'.
	ErrBadBit = errors.New("rle: bit value is not 0 or 1")

	// ErrRunTooLong is returned by Err when a token's run length does not
	// fit in an int.
	ErrRunTooLong = errors.New("rle: run length too long")
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

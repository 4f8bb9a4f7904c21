/*
Package bitreel is a library for encoding, storing and playing run-length
encoded monochrome video clips on small page-addressed displays.
*/
package bitreel

import (
	"fmt"
	"io"
	"log"

	"github.com/bitreel/bitreel/clip"
)

type Bitreel struct {
	db     *ClipDB
	logger *log.Logger
}

// New opens (creating if necessary) the clip database at file. Progress and
// diagnostics are written to logger.
func New(file string, logger *log.Logger) (*Bitreel, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	db, err := NewClipDB(file)
	if err != nil {
		return nil, err
	}
	return &Bitreel{
		db:     db,
		logger: logger,
	}, nil
}

func (b *Bitreel) Close() error {
	return b.db.Close()
}

// Clip returns the named stored clip.
func (b *Bitreel) Clip(name string) (*clip.Clip, error) {
	c, err := b.db.Find(name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("bitreel: no clip named \"%s\"", name)
	}
	return c, nil
}

// List returns every stored clip.
func (b *Bitreel) List() ([]ClipInfo, error) {
	return b.db.List()
}

package bitreel

import (
	"context"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bitreel/bitreel/frame"
)

const importWorkers = 10

func (b *Bitreel) findGIFs(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			// Ignore any file greater than 16 MB
			if info.Size() > 16<<(10*2) {
				return nil
			}

			if filepath.Ext(file) != ".gif" {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (b *Bitreel) encodeWorker(ctx context.Context, geo frame.Geometry, fps int, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			f, err := os.Open(file)
			if err != nil {
				errc <- err
				return
			}

			g, err := gif.DecodeAll(f)
			f.Close()
			if err != nil {
				b.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			}

			c, err := EncodeGIF(g, geo, fps)
			if err != nil {
				b.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			}

			name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			if err := b.db.Add(name, c); err != nil {
				errc <- err
				return
			}

			b.logger.Printf("Imported \"%s\" as \"%s\"\n", file, name)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Import walks path for GIF files and stores each one in the clip database
// under its basename, encoding to the given geometry and frame rate. Files
// that cannot be encoded are skipped with a log line; filesystem and database
// errors abort the import.
func (b *Bitreel) Import(path string, geo frame.Geometry, fps int) error {
	if err := geo.Validate(); err != nil {
		return err
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := b.findGIFs(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < importWorkers; i++ {
		errc, err := b.encodeWorker(ctx, geo, fps, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

// PlayClip plays the named stored clip through sink. A positive fps overrides
// the clip's own frame rate. It returns the number of frames played.
func (b *Bitreel) PlayClip(name string, fps int, sink FrameSink) (int, error) {
	c, err := b.Clip(name)
	if err != nil {
		return 0, err
	}

	if fps <= 0 {
		fps = c.FPS
	}

	p, err := NewPlayer(c.Data, c.Geometry, fps, sink, nil, b.logger)
	if err != nil {
		return 0, err
	}

	return p.Play()
}

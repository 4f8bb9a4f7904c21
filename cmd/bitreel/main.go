package main

import (
	"fmt"
	"image/gif"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/bitreel/bitreel"
	"github.com/bitreel/bitreel/clip"
	"github.com/bitreel/bitreel/frame"
	"github.com/bitreel/bitreel/oled"
)

const defaultDB = "bitreel.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func geometryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Value: 128,
			Usage: "frame width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: 64,
			Usage: "frame height in pixels, multiple of 8",
		},
		&cli.IntFlag{
			Name:  "fps",
			Value: 12,
			Usage: "target frames per second",
		},
	}
}

func encodeFile(c *cli.Context) (*clip.Clip, error) {
	f, err := os.Open(c.Args().First())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, err
	}

	geo := frame.Geometry{Width: c.Int("width"), Height: c.Int("height")}

	return bitreel.EncodeGIF(g, geo, c.Int("fps"))
}

func loadClip(c *cli.Context) (*clip.Clip, error) {
	if name := c.String("name"); name != "" {
		b, err := bitreel.New(c.String("db"), newLogger(c))
		if err != nil {
			return nil, err
		}
		defer b.Close()

		return b.Clip(name)
	}

	b, err := os.ReadFile(c.Args().First())
	if err != nil {
		return nil, err
	}

	cl := &clip.Clip{}
	if err := cl.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	return cl, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bitreel"
	app.Usage = "RLE monochrome video utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BITREEL_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to clip database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode an animated GIF into a clip file",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Flags:       geometryFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cl, err := encodeFile(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				b, err := cl.MarshalBinary()
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := os.WriteFile(c.Args().Get(1), b, 0644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Encode every GIF under a directory into the clip database",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags:       geometryFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := bitreel.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer b.Close()

				geo := frame.Geometry{Width: c.Int("width"), Height: c.Int("height")}
				if err := b.Import(c.Args().First(), geo, c.Int("fps")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List clips in the database",
			Description: "",
			Action: func(c *cli.Context) error {
				b, err := bitreel.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer b.Close()

				clips, err := b.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, i := range clips {
					fmt.Printf("%s\t%dx%d\t%d fps\t%d bytes\n", i.Name, i.Geometry.Width, i.Geometry.Height, i.FPS, i.Bytes)
				}

				return nil
			},
		},
		{
			Name:        "play",
			Usage:       "Play a clip file or a stored clip",
			Description: "",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "play a clip from the database instead of a file",
				},
				&cli.IntFlag{
					Name:  "fps",
					Usage: "override the clip's frame rate",
				},
				&cli.BoolFlag{
					Name:  "oled",
					Usage: "render to an OLED display instead of the terminal",
				},
				&cli.StringFlag{
					Name:  "i2c",
					Usage: "I2C bus of the OLED display",
				},
			},
			Action: func(c *cli.Context) error {
				if c.String("name") == "" && c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cl, err := loadClip(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fps := cl.FPS
				if c.Int("fps") > 0 {
					fps = c.Int("fps")
				}

				var sink bitreel.FrameSink = bitreel.NewTermSink(os.Stdout)
				if c.Bool("oled") {
					s, err := oled.NewSink(c.String("i2c"), cl.Geometry.Width, cl.Geometry.Height)
					if err != nil {
						return cli.Exit(err, 1)
					}
					defer s.Halt()
					sink = s
				}

				p, err := bitreel.NewPlayer(cl.Data, cl.Geometry, fps, sink, nil, newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if _, err := p.Play(); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"os"

	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "go-sphere-tracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene or a JSON scene file. Pixels are sampled on a tile grid
by a pool of workers over one or more progressive passes; the result only
depends on the seed, never on the number of workers.

The output format follows the file extension: .ppm, .png, .webp or .tga.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "scene ID as listed by the scenes command",
				},
				cli.StringFlag{
					Name:  "scene-file",
					Usage: "render a JSON scene file instead of a registered scene",
				},
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: "scenes",
					Usage: "directory searched for file: scene IDs",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (0 = keep the scene aspect ratio)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (0 = keep the scene aspect ratio)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounces (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: 1,
					Usage: "number of progressive passes",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = one per CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 64,
					Usage: "edge length of a render tile in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for generated scenes and pixel sampling",
				},
				cli.StringFlag{
					Name:  "integrator",
					Usage: "path or normals (empty = scene preference)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.ppm",
					Usage: "image filename for the rendered frame",
				},
				cli.IntFlag{
					Name:  "output-width",
					Usage: "resize the written image to this width (0 = no resize)",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: "scenes",
					Usage: "directory scanned for JSON scene files",
				},
			},
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the progressive render API over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Value: 8080,
					Usage: "port to serve on",
				},
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: "scenes",
					Usage: "directory scanned for JSON scene files",
				},
			},
			Action: Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

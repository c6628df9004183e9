package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/web/server"
)

var logger = log.New("sphere-tracer-web")

func main() {
	app := cli.NewApp()
	app.Name = "sphere-tracer-web"
	app.Usage = "stream progressive sphere renders to the browser"
	app.Flags = []cli.Flag{
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
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		if ctx.Bool("v") {
			log.SetLevel(log.Info)
		}
		logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", ctx.Int("port"))
		return server.NewServer(ctx.Int("port"), ctx.String("scenes-dir"), logger).Start()
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

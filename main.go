package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/glimmer-render/glimmer/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "glimmer"
	app.Usage = "render scenes using path tracing"
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
			Name:      "render",
			Usage:     "render a demo scene to a PNG file",
			ArgsUsage: "scene_name",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 256,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: 32,
					Usage: "maximum path length",
				},
				cli.IntFlag{
					Name:  "rr-bounces",
					Value: 3,
					Usage: "bounces before russian roulette may terminate paths",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 64,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "render workers, 0 uses all CPUs",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "random seed",
				},
				cli.BoolFlag{
					Name:  "no-adaptive",
					Usage: "disable adaptive sampling",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:   "scenes",
			Usage:  "list available demo scenes",
			Action: cmd.Scenes,
		},
	}

	app.Run(os.Args)
}

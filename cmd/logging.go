package cmd

import (
	"github.com/glimmer-render/glimmer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("glimmer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

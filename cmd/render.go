package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/glimmer-render/glimmer/pkg/integrator"
	"github.com/glimmer-render/glimmer/pkg/renderer"
	"github.com/glimmer-render/glimmer/pkg/scene"
)

// Render traces a demo scene and writes the result as a PNG.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument (try the scenes command)")
	}

	builder, err := scene.Lookup(ctx.Args().First())
	if err != nil {
		return err
	}

	scn, err := builder(ctx.Int("width"), ctx.Int("height"))
	if err != nil {
		return err
	}

	pathConfig := integrator.DefaultPathConfig()
	pathConfig.MaxDepth = ctx.Int("max-depth")
	pathConfig.RRMinBounces = ctx.Int("rr-bounces")

	config := renderer.DefaultConfig()
	config.SamplesPerPixel = ctx.Int("spp")
	config.TileSize = ctx.Int("tile-size")
	config.Workers = ctx.Int("workers")
	config.Seed = ctx.Int64("seed")
	if ctx.Bool("no-adaptive") {
		config.AdaptiveMinFraction = 1
	}

	reportSystem()

	r := renderer.NewRenderer(scn, integrator.NewPathTracer(pathConfig), config)

	// Ctrl-C stops the render between tiles; the partial film is still
	// written out.
	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	film, stats, renderErr := r.Render(renderCtx)
	if renderErr != nil && stats.Tiles == 0 {
		return renderErr
	}

	outFile := ctx.String("out")
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, film.ToRGBA()); err != nil {
		return err
	}

	logger.Noticef("wrote %s", outFile)
	displayRenderStats(stats, scn)
	return renderErr
}

// Scenes lists the available demo scenes.
func Scenes(ctx *cli.Context) error {
	for _, name := range scene.Names() {
		fmt.Println(name)
	}
	return nil
}

func displayRenderStats(stats renderer.RenderStats, scn *scene.Scene) {
	bvh := scn.BVHStats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples", "Avg spp", "Min spp", "Max spp", "Tiles", "Workers", "BVH nodes", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%d", stats.MinSamples),
		fmt.Sprintf("%d", stats.MaxSamplesUsed),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", bvh.TotalNodes),
		stats.Elapsed.String(),
	})
	table.Render()

	fmt.Print(buf.String())
}

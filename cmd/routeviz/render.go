package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/routeviz/internal/anim"
	"github.com/matsen/routeviz/internal/config"
	"github.com/matsen/routeviz/internal/frameloop"
	"github.com/matsen/routeviz/internal/logging"
	"github.com/matsen/routeviz/internal/render/raster"
	"github.com/matsen/routeviz/internal/render/vector"
	"github.com/matsen/routeviz/internal/scene"
	"github.com/matsen/routeviz/internal/storage"
	"github.com/matsen/routeviz/internal/visualizer"
)

// arrivalFrameCap bounds --arrive so a stalled animation cannot spin forever.
const arrivalFrameCap = 100000

func init() {
	rootCmd.AddCommand(renderCmd)
	addSceneFlags(renderCmd)

	renderCmd.Flags().StringP("output", "o", "graph.png", "Output file (.png or .svg)")
	renderCmd.Flags().Int("ticks", 0, "Animation frames to advance before drawing")
	renderCmd.Flags().Bool("arrive", false, "Advance until the icon reaches the end of --path")
}

// addSceneFlags registers the flags shared by render and play.
func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().String("snapshot", "", "Snapshot JSON file (default: the route store)")
	cmd.Flags().String("path", "", "Comma-separated cities to highlight as a path")
	cmd.Flags().String("icon", "", "Icon travelling along --path: vehicle or pedestrian")
	cmd.Flags().String("nodes", "", "Comma-separated cities to highlight without motion")
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw the graph to a PNG or SVG file",
	Long: `Load a snapshot, apply optional highlights, advance the animation and
write a single frame. The output format follows the file extension.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	ticks, _ := cmd.Flags().GetInt("ticks")
	arrive, _ := cmd.Flags().GetBool("arrive")

	cfg := mustLoadConfig()
	loop := frameloop.NewManual()
	v := newVisualizer(cfg, loop)
	mustLoadScene(cmd, v)
	mustApplyHighlights(cmd, cfg, v)

	frames := 0
	switch {
	case arrive:
		if v.Coordinator().State() != anim.PathAnimating {
			exitWithError(ExitError, "--arrive needs a --path of at least two cities")
		}
		frames = loop.RunUntilIdle(arrivalFrameCap)
	case ticks > 0:
		frames = loop.RunUntilIdle(ticks)
	}

	if err := writeFrame(v, output); err != nil {
		exitWithError(ExitError, "writing %s: %v", output, err)
	}
	logging.Named("render").Infow("frame written", "output", output, "frames", frames)

	resp := frameResponse(v, frames)
	resp.Output = output
	emit(resp, func() {
		brand.Printf("Wrote %s\n", output)
		fmt.Printf("  %d cities, %d routes, %d frames, %s\n", resp.Cities, resp.Routes, frames, info.Sprint(resp.State))
		if len(resp.Highlighted) > 0 {
			fmt.Printf("  highlighted: %s\n", strings.Join(resp.Highlighted, ", "))
		}
	})
	return nil
}

func newVisualizer(cfg *config.Config, sched anim.Scheduler, opts ...visualizer.Option) *visualizer.Visualizer {
	opts = append([]visualizer.Option{
		visualizer.WithSize(cfg.Width, cfg.Height),
		visualizer.WithSeed(cfg.Seed),
		visualizer.WithLogger(logging.Named("visualizer")),
	}, opts...)
	return visualizer.New(sched, opts...)
}

// mustLoadScene loads --snapshot, or the route store when it is unset.
func mustLoadScene(cmd *cobra.Command, v *visualizer.Visualizer) {
	path, _ := cmd.Flags().GetString("snapshot")

	var snap *scene.Snapshot
	var err error
	if path != "" {
		snap, err = storage.ReadSnapshotFile(path)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	} else {
		db := mustOpenDatabase()
		snap, err = db.Snapshot()
		db.Close()
		if err != nil {
			exitWithError(ExitError, "reading route store: %v", err)
		}
	}
	v.LoadSnapshot(snap)
}

// mustApplyHighlights applies --path/--icon or --nodes.
func mustApplyHighlights(cmd *cobra.Command, cfg *config.Config, v *visualizer.Visualizer) {
	pathFlag, _ := cmd.Flags().GetString("path")
	nodesFlag, _ := cmd.Flags().GetString("nodes")
	iconFlag, _ := cmd.Flags().GetString("icon")

	if pathFlag != "" && nodesFlag != "" {
		exitWithError(ExitError, "--path and --nodes are mutually exclusive")
	}

	kind := cfg.Icon()
	if iconFlag != "" {
		k, err := anim.ParseIconKind(iconFlag)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		kind = k
	}

	switch {
	case pathFlag != "":
		path := splitCities(pathFlag)
		mustKnowCities(v.Scene(), path)
		v.SetHighlightPath(path, kind)
	case nodesFlag != "":
		nodes := splitCities(nodesFlag)
		mustKnowCities(v.Scene(), nodes)
		v.SetHighlightNodes(nodes)
	}
}

func splitCities(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func mustKnowCities(sc *scene.Scene, cities []string) {
	for _, c := range cities {
		if _, ok := sc.Node(c); !ok {
			exitWithError(ExitDataError, "unknown city %q", c)
		}
	}
}

// writeFrame draws the current state into a new file whose format follows
// the extension.
func writeFrame(v *visualizer.Visualizer, path string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	w, h := v.Size()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		c, err := raster.New(int(w), int(h))
		if err != nil {
			return err
		}
		v.SetCanvas(c)
		v.Draw()
		return c.SavePNG(path)
	case ".svg":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		return drawSVG(v, f)
	default:
		return fmt.Errorf("unsupported output format %q (use .png or .svg)", filepath.Ext(path))
	}
}

// drawSVG draws the current frame as an SVG document into wc and closes it.
func drawSVG(v *visualizer.Visualizer, wc io.WriteCloser) error {
	w, h := v.Size()
	c, err := vector.New(wc, int(w), int(h))
	if err != nil {
		wc.Close()
		return err
	}
	v.SetCanvas(c)
	v.Draw()
	c.Close()
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing svg: %w", err)
	}
	return nil
}

func frameResponse(v *visualizer.Visualizer, frames int) FrameResponse {
	return FrameResponse{
		Frames:      frames,
		State:       v.Coordinator().State().String(),
		Highlighted: v.Coordinator().HighlightedNodes(),
		Visited:     v.Coordinator().VisitedNodes(),
		Cities:      v.Scene().Len(),
		Routes:      len(v.Scene().Edges()),
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/routeviz/internal/frameloop"
	"github.com/matsen/routeviz/internal/logging"
	"github.com/matsen/routeviz/internal/render/raster"
	"github.com/matsen/routeviz/internal/visualizer"
)

func init() {
	rootCmd.AddCommand(playCmd)
	addSceneFlags(playCmd)

	playCmd.Flags().String("dir", "frames", "Directory for the PNG frames")
	playCmd.Flags().Int("every", 1, "Write every Nth frame")
	playCmd.Flags().Int("max-frames", 0, "Stop after this many frames (0 = until the animation settles)")
	playCmd.Flags().Float64("fps", 0, "Frame rate (default: config fps)")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the animation in real time and write PNG frames",
	Long: `Run the frame loop at the configured rate until the travelling icon
arrives, writing frames to --dir. Highlighting --nodes pulses forever, so
it needs --max-frames.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	every, _ := cmd.Flags().GetInt("every")
	maxFrames, _ := cmd.Flags().GetInt("max-frames")
	fps, _ := cmd.Flags().GetFloat64("fps")

	if every < 1 {
		exitWithError(ExitError, "--every must be at least 1")
	}
	if nodes, _ := cmd.Flags().GetString("nodes"); nodes != "" && maxFrames <= 0 {
		exitWithError(ExitError, "--nodes pulses forever; set --max-frames")
	}

	cfg := mustLoadConfig()
	if fps <= 0 {
		fps = cfg.FPS
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", dir, err)
	}

	canvas, err := raster.New(int(cfg.Width), int(cfg.Height))
	if err != nil {
		exitWithError(ExitError, "creating canvas: %v", err)
	}

	log := logging.Named("play")
	written := 0
	var saveErr error
	save := func(frame int) {
		if saveErr != nil || frame%every != 0 {
			return
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", written))
		if saveErr = canvas.SavePNG(path); saveErr == nil {
			written++
			log.Debugw("frame saved", "frame", frame, "path", path)
		}
	}

	loop := frameloop.NewPaced(fps, frameloop.WithLogger(logging.Named("frameloop")))
	v := newVisualizer(cfg, loop, visualizer.WithCanvas(canvas), visualizer.WithAfterDraw(save))
	mustLoadScene(cmd, v)
	mustApplyHighlights(cmd, cfg, v)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames, err := loop.Run(ctx, maxFrames)
	switch {
	case errors.Is(err, frameloop.ErrFrameLimit):
		v.Coordinator().Stop()
	case err != nil:
		exitWithError(ExitError, "frame loop: %v", err)
	}
	if saveErr != nil {
		exitWithError(ExitError, "saving frame: %v", saveErr)
	}
	log.Infow("playback finished", "frames", frames, "written", written, "dir", dir)

	resp := frameResponse(v, frames)
	resp.Output = dir
	resp.Written = written
	emit(resp, func() {
		brand.Printf("Wrote %d frames to %s\n", written, dir)
		fmt.Printf("  %d frames at %v fps, %s\n", frames, fps, info.Sprint(resp.State))
	})
	return nil
}

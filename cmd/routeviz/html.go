package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/routeviz/internal/frameloop"
	"github.com/matsen/routeviz/internal/viz"
)

func init() {
	rootCmd.AddCommand(htmlCmd)
	addSceneFlags(htmlCmd)

	htmlCmd.Flags().StringP("output", "o", "graph.html", "Output HTML file")
	htmlCmd.Flags().String("layout", "preset", "Layout: preset (routeviz positions), force, circle, grid")
	htmlCmd.Flags().String("title", "", "Page title")
	htmlCmd.Flags().Bool("arrive", false, "Mark the whole --path as visited")
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Export the graph as an interactive HTML page",
	Long: `Write a self-contained Cytoscape.js page showing the cities at their
laid-out positions, with distances on the routes and any highlights applied.`,
	Args: cobra.NoArgs,
	RunE: runHTML,
}

func runHTML(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	layout, _ := cmd.Flags().GetString("layout")
	title, _ := cmd.Flags().GetString("title")
	arrive, _ := cmd.Flags().GetBool("arrive")

	cfg := mustLoadConfig()
	loop := frameloop.NewManual()
	v := newVisualizer(cfg, loop)
	mustLoadScene(cmd, v)
	mustApplyHighlights(cmd, cfg, v)

	frames := 0
	if arrive {
		frames = loop.RunUntilIdle(arrivalFrameCap)
	}

	graph := viz.BuildGraphFromScene(v.Scene(), v.Coordinator())
	html, err := viz.GenerateHTML(graph, viz.HTMLOptions{Layout: layout, Title: title})
	if err != nil {
		exitWithError(ExitError, "generating HTML: %v", err)
	}
	if err := ensureParentDir(output); err != nil {
		exitWithError(ExitError, "creating output directory: %v", err)
	}
	if err := os.WriteFile(output, []byte(html), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", output, err)
	}

	resp := frameResponse(v, frames)
	resp.Output = output
	emit(resp, func() {
		brand.Printf("Wrote %s\n", output)
		subtle.Printf("  %d cities, %d routes\n", resp.Cities, resp.Routes)
	})
	return nil
}

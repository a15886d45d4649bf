package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/matsen/routeviz/internal/storage"
)

// Colours for human output.
var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	info   = color.New(color.FgCyan)
	bad    = color.New(color.FgRed)
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		bad.Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// emit prints v as JSON, or calls human when --human is set.
func emit(v interface{}, human func()) {
	if humanOutput {
		human()
		return
	}
	if err := outputJSON(v); err != nil {
		exitWithError(ExitError, "writing output: %v", err)
	}
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
	Cities int    `json:"cities,omitempty"`
	Path   string `json:"path,omitempty"`
}

// RouteResponse is the response for single-route commands.
type RouteResponse struct {
	Action string        `json:"action"`
	Route  storage.Route `json:"route"`
}

// RouteListResponse is the response for routes list.
type RouteListResponse struct {
	Cities []string        `json:"cities"`
	Routes []storage.Route `json:"routes"`
}

// FrameResponse describes rendered output.
type FrameResponse struct {
	Output      string   `json:"output,omitempty"`
	Frames      int      `json:"frames"`
	Written     int      `json:"written,omitempty"`
	State       string   `json:"state"`
	Highlighted []string `json:"highlighted,omitempty"`
	Visited     []string `json:"visited,omitempty"`
	Cities      int      `json:"cities"`
	Routes      int      `json:"routes"`
}

// printRoute prints one route in human-readable form.
func printRoute(r storage.Route) {
	fmt.Printf("  %s %s %s %s\n", r.From, subtle.Sprint("↔"), r.To, info.Sprintf("%d", r.Distance))
}

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matsen/routeviz/internal/logging"
	"github.com/matsen/routeviz/internal/storage"
)

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.AddCommand(routesAddCmd, routesUpdateCmd, routesRemoveCmd, routesGetCmd, routesListCmd,
		routesSampleCmd, routesClearCmd, routesExportCmd, routesImportCmd)

	for _, c := range []*cobra.Command{routesAddCmd, routesUpdateCmd} {
		c.Flags().String("journal", "", "Also append the route to this JSONL file")
	}
	routesListCmd.Flags().Bool("count", false, "Print only the number of cities and routes")

	routesExportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	routesExportCmd.Flags().String("format", "snapshot", "Export format: snapshot or jsonl")
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Manage the route store",
	Long:  `Commands for adding, updating, removing and exporting the routes that make up the graph.`,
}

var routesAddCmd = &cobra.Command{
	Use:   "add <from> <to> <distance>",
	Short: "Add a route, replacing the distance if it exists",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRouteWrite(cmd, "added", args, (*storage.DB).AddRoute)
	},
}

var routesUpdateCmd = &cobra.Command{
	Use:   "update <from> <to> <distance>",
	Short: "Change the distance of an existing route",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRouteWrite(cmd, "updated", args, (*storage.DB).UpdateRoute)
	},
}

// parseRouteArgs builds a route from <from> <to> <distance>.
func parseRouteArgs(args []string) (storage.Route, error) {
	d, err := strconv.Atoi(args[2])
	if err != nil {
		return storage.Route{}, fmt.Errorf("distance must be an integer: %q", args[2])
	}
	r := storage.Route{From: args[0], To: args[1], Distance: d}
	return r, r.Validate()
}

type routeWriter func(*storage.DB, storage.Route) error

func runRouteWrite(cmd *cobra.Command, action string, args []string, write routeWriter) error {
	journal, _ := cmd.Flags().GetString("journal")
	r, err := parseRouteArgs(args)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	db := mustOpenDatabase()
	defer db.Close()

	if err := recordRoute(db, r, write, journal); err != nil {
		exitWithDBError(err)
	}
	logging.Named("routes").Infow("route "+action, "from", r.From, "to", r.To, "distance", r.Distance, "journal", journal)

	emit(RouteResponse{Action: action, Route: r}, func() {
		brand.Printf("Route %s\n", action)
		printRoute(r)
	})
	return nil
}

// recordRoute applies write to the store and, when journal is set, appends
// the route to that JSONL file. Nothing is journaled if the write fails.
func recordRoute(db *storage.DB, r storage.Route, write routeWriter, journal string) error {
	if err := write(db, r); err != nil {
		return err
	}
	if journal == "" {
		return nil
	}
	return storage.AppendRoute(journal, r)
}

var routesGetCmd = &cobra.Command{
	Use:   "get <from> <to>",
	Short: "Show the route between two cities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := mustOpenDatabase()
		defer db.Close()

		r, err := db.GetRoute(args[0], args[1])
		if err != nil {
			exitWithDBError(err)
		}
		emit(RouteResponse{Action: "found", Route: *r}, func() {
			printRoute(*r)
		})
		return nil
	},
}

var routesRemoveCmd = &cobra.Command{
	Use:   "remove <from> <to>",
	Short: "Remove a route; both cities stay known",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := mustOpenDatabase()
		defer db.Close()

		if err := db.RemoveRoute(args[0], args[1]); err != nil {
			exitWithDBError(err)
		}

		r := storage.Route{From: args[0], To: args[1]}
		emit(RouteResponse{Action: "removed", Route: r}, func() {
			brand.Printf("Removed route %s - %s\n", r.From, r.To)
		})
		return nil
	},
}

var routesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cities and routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		countOnly, _ := cmd.Flags().GetBool("count")

		db := mustOpenDatabase()
		defer db.Close()

		if countOnly {
			resp, err := countResponse(db, "counted")
			if err != nil {
				exitWithError(ExitError, "%v", err)
			}
			emit(resp, func() {
				brand.Printf("%d cities, %d routes\n", resp.Cities, resp.Count)
			})
			return nil
		}

		cities, err := db.AllCities()
		if err != nil {
			exitWithError(ExitError, "listing cities: %v", err)
		}
		routes, err := db.AllRoutes()
		if err != nil {
			exitWithError(ExitError, "listing routes: %v", err)
		}
		if cities == nil {
			cities = []string{}
		}
		if routes == nil {
			routes = []storage.Route{}
		}

		emit(RouteListResponse{Cities: cities, Routes: routes}, func() {
			brand.Printf("%d cities, %d routes\n", len(cities), len(routes))
			for _, r := range routes {
				printRoute(r)
			}
		})
		return nil
	},
}

var routesSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Replace the store with the sample US city network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db := mustOpenDatabase()
		defer db.Close()

		if err := db.LoadSample(); err != nil {
			exitWithError(ExitError, "loading sample: %v", err)
		}
		resp, err := countResponse(db, "loaded")
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		emit(resp, func() {
			brand.Printf("Loaded %d sample routes between %d cities\n", resp.Count, resp.Cities)
		})
		return nil
	},
}

var routesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every route and city",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db := mustOpenDatabase()
		defer db.Close()

		if err := db.Clear(); err != nil {
			exitWithError(ExitError, "clearing store: %v", err)
		}
		emit(StatusResponse{Status: "cleared"}, func() {
			brand.Println("Route store cleared")
		})
		return nil
	},
}

var routesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the network as a snapshot document or routes JSONL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")

		db := mustOpenDatabase()
		defer db.Close()

		switch format {
		case "snapshot":
			snap, err := db.Snapshot()
			if err != nil {
				exitWithError(ExitError, "building snapshot: %v", err)
			}
			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					exitWithError(ExitError, "creating %s: %v", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := storage.WriteSnapshot(w, snap); err != nil {
				exitWithError(ExitError, "%v", err)
			}
		case "jsonl":
			if output == "" {
				exitWithError(ExitError, "--output is required for jsonl export")
			}
			routes, err := db.AllRoutes()
			if err != nil {
				exitWithError(ExitError, "listing routes: %v", err)
			}
			if err := storage.WriteAllRoutes(output, routes); err != nil {
				exitWithError(ExitError, "%v", err)
			}
			emit(StatusResponse{Status: "exported", Count: len(routes), Path: output}, func() {
				brand.Printf("Exported %d routes to %s\n", len(routes), output)
			})
		default:
			exitWithError(ExitError, "unknown format %q (valid: snapshot, jsonl)", format)
		}
		return nil
	},
}

var routesImportCmd = &cobra.Command{
	Use:   "import <routes.jsonl>",
	Short: "Replace the store with the routes in a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := mustOpenDatabase()
		defer db.Close()

		n, err := db.RebuildFromJSONL(args[0])
		if err != nil {
			exitWithDBError(err)
		}
		emit(StatusResponse{Status: "imported", Count: n, Path: args[0]}, func() {
			brand.Printf("Imported %d routes from %s\n", n, args[0])
		})
		return nil
	},
}

// countResponse reports the stored route count as Count alongside the city count.
func countResponse(db *storage.DB, status string) (StatusResponse, error) {
	routes, err := db.CountRoutes()
	if err != nil {
		return StatusResponse{}, err
	}
	cities, err := db.CountCities()
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{Status: status, Count: routes, Cities: cities}, nil
}

// exitWithDBError maps store errors onto exit codes.
func exitWithDBError(err error) {
	switch {
	case errors.Is(err, storage.ErrRouteNotFound), errors.Is(err, storage.ErrInvalidRoute):
		exitWithError(ExitDataError, "%v", err)
	default:
		exitWithError(ExitError, "%v", err)
	}
}

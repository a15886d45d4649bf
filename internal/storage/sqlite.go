package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection holding the route network.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Every city ever named by a route; removing a route keeps its cities
		CREATE TABLE IF NOT EXISTS cities (
			name TEXT PRIMARY KEY
		);

		-- Undirected routes, stored once with city_a < city_b
		CREATE TABLE IF NOT EXISTS routes (
			city_a TEXT NOT NULL,
			city_b TEXT NOT NULL,
			distance INTEGER NOT NULL CHECK (distance > 0),
			PRIMARY KEY (city_a, city_b)
		);

		CREATE INDEX IF NOT EXISTS idx_routes_b ON routes(city_b);
	`

	_, err := db.Exec(schema)
	return err
}

// Clear removes every route and city.
func (d *DB) Clear() error {
	if _, err := d.db.Exec("DELETE FROM routes"); err != nil {
		return fmt.Errorf("clearing routes table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM cities"); err != nil {
		return fmt.Errorf("clearing cities table: %w", err)
	}
	return nil
}

// CountRoutes returns the number of stored routes.
func (d *DB) CountRoutes() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM routes").Scan(&count)
	return count, err
}

// CountCities returns the number of known cities.
func (d *DB) CountCities() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM cities").Scan(&count)
	return count, err
}

// RebuildFromJSONL clears the database and rebuilds it from a routes JSONL
// file. Later lines for the same pair replace earlier ones.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	routes, err := ReadAllRoutes(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if err := d.Clear(); err != nil {
		return 0, err
	}

	for i, r := range routes {
		if err := d.AddRoute(r); err != nil {
			return 0, fmt.Errorf("route %d: %w", i+1, err)
		}
	}

	return len(routes), nil
}

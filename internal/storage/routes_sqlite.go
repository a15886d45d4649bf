package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRouteNotFound is returned when updating or removing a missing route.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidRoute is returned for routes that fail validation.
	ErrInvalidRoute = errors.New("invalid route")
)

// Route is an undirected, weighted connection between two cities.
type Route struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Distance int    `json:"distance"`
}

// Validate checks that both cities are named, distinct, and that the
// distance is positive.
func (r Route) Validate() error {
	from, to := strings.TrimSpace(r.From), strings.TrimSpace(r.To)
	switch {
	case from == "" || to == "":
		return fmt.Errorf("%w: both cities are required", ErrInvalidRoute)
	case from == to:
		return fmt.Errorf("%w: %q cannot connect to itself", ErrInvalidRoute, from)
	case r.Distance <= 0:
		return fmt.Errorf("%w: distance must be positive, got %d", ErrInvalidRoute, r.Distance)
	}
	return nil
}

// normalize trims the names and orders the pair so From < To.
func (r Route) normalize() Route {
	r.From, r.To = strings.TrimSpace(r.From), strings.TrimSpace(r.To)
	if r.To < r.From {
		r.From, r.To = r.To, r.From
	}
	return r
}

// AddRoute inserts a route, replacing the distance if the pair already
// exists in either direction. Both cities are registered.
func (d *DB) AddRoute(r Route) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r = r.normalize()

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, city := range []string{r.From, r.To} {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO cities (name) VALUES (?)`, city); err != nil {
			return fmt.Errorf("registering city %s: %w", city, err)
		}
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO routes (city_a, city_b, distance)
		VALUES (?, ?, ?)
	`, r.From, r.To, r.Distance)
	if err != nil {
		return fmt.Errorf("inserting route %s-%s: %w", r.From, r.To, err)
	}

	return tx.Commit()
}

// UpdateRoute changes the distance of an existing route.
func (d *DB) UpdateRoute(r Route) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r = r.normalize()

	res, err := d.db.Exec(`
		UPDATE routes SET distance = ?
		WHERE city_a = ? AND city_b = ?
	`, r.Distance, r.From, r.To)
	if err != nil {
		return fmt.Errorf("updating route %s-%s: %w", r.From, r.To, err)
	}
	return requireRow(res, r)
}

// RemoveRoute deletes the route between two cities. The cities stay known.
func (d *DB) RemoveRoute(from, to string) error {
	r := Route{From: from, To: to}.normalize()

	res, err := d.db.Exec(`
		DELETE FROM routes WHERE city_a = ? AND city_b = ?
	`, r.From, r.To)
	if err != nil {
		return fmt.Errorf("removing route %s-%s: %w", r.From, r.To, err)
	}
	return requireRow(res, r)
}

func requireRow(res sql.Result, r Route) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s-%s", ErrRouteNotFound, r.From, r.To)
	}
	return nil
}

// GetRoute returns the route between two cities, in either order.
func (d *DB) GetRoute(from, to string) (*Route, error) {
	key := Route{From: from, To: to}.normalize()

	var r Route
	err := d.db.QueryRow(`
		SELECT city_a, city_b, distance FROM routes
		WHERE city_a = ? AND city_b = ?
	`, key.From, key.To).Scan(&r.From, &r.To, &r.Distance)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s-%s", ErrRouteNotFound, key.From, key.To)
	}
	if err != nil {
		return nil, fmt.Errorf("querying route: %w", err)
	}
	return &r, nil
}

// AllRoutes returns every route ordered by city pair.
func (d *DB) AllRoutes() ([]Route, error) {
	rows, err := d.db.Query(`
		SELECT city_a, city_b, distance FROM routes
		ORDER BY city_a, city_b
	`)
	if err != nil {
		return nil, fmt.Errorf("querying all routes: %w", err)
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.From, &r.To, &r.Distance); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// AllCities returns every known city, sorted.
func (d *DB) AllCities() ([]string, error) {
	rows, err := d.db.Query(`SELECT name FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cities = append(cities, name)
	}
	return cities, rows.Err()
}

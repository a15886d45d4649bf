package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	db, err := OpenDB(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddRoute_RegistersCities(t *testing.T) {
	db := setupTestDB(t)

	if err := db.AddRoute(Route{From: "New York", To: "Boston", Distance: 215}); err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}

	cities, err := db.AllCities()
	if err != nil {
		t.Fatalf("AllCities failed: %v", err)
	}
	if !reflect.DeepEqual(cities, []string{"Boston", "New York"}) {
		t.Errorf("expected [Boston New York], got %v", cities)
	}

	routes, err := db.AllRoutes()
	if err != nil {
		t.Fatalf("AllRoutes failed: %v", err)
	}
	want := []Route{{From: "Boston", To: "New York", Distance: 215}}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("expected %v, got %v", want, routes)
	}
}

func TestAddRoute_UpsertsEitherDirection(t *testing.T) {
	db := setupTestDB(t)

	db.AddRoute(Route{From: "A", To: "B", Distance: 5})
	if err := db.AddRoute(Route{From: "B", To: "A", Distance: 9}); err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}

	count, _ := db.CountRoutes()
	if count != 1 {
		t.Errorf("expected 1 route, got %d", count)
	}
	r, err := db.GetRoute("A", "B")
	if err != nil {
		t.Fatalf("GetRoute failed: %v", err)
	}
	if r.Distance != 9 {
		t.Errorf("expected distance 9, got %d", r.Distance)
	}
}

func TestAddRoute_Invalid(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		name  string
		route Route
	}{
		{"missing origin", Route{From: "", To: "B", Distance: 1}},
		{"blank destination", Route{From: "A", To: "  ", Distance: 1}},
		{"self loop", Route{From: "A", To: " A ", Distance: 1}},
		{"zero distance", Route{From: "A", To: "B", Distance: 0}},
		{"negative distance", Route{From: "A", To: "B", Distance: -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.AddRoute(tt.route)
			if !errors.Is(err, ErrInvalidRoute) {
				t.Errorf("expected ErrInvalidRoute, got %v", err)
			}
		})
	}

	if count, _ := db.CountCities(); count != 0 {
		t.Errorf("invalid routes registered %d cities", count)
	}
}

func TestUpdateRoute(t *testing.T) {
	db := setupTestDB(t)
	db.AddRoute(Route{From: "A", To: "B", Distance: 5})

	if err := db.UpdateRoute(Route{From: "B", To: "A", Distance: 7}); err != nil {
		t.Fatalf("UpdateRoute failed: %v", err)
	}
	r, _ := db.GetRoute("B", "A")
	if r.Distance != 7 {
		t.Errorf("expected distance 7, got %d", r.Distance)
	}

	err := db.UpdateRoute(Route{From: "A", To: "C", Distance: 1})
	if !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestRemoveRoute_KeepsCities(t *testing.T) {
	db := setupTestDB(t)
	db.AddRoute(Route{From: "A", To: "B", Distance: 5})
	db.AddRoute(Route{From: "B", To: "C", Distance: 6})

	if err := db.RemoveRoute("B", "A"); err != nil {
		t.Fatalf("RemoveRoute failed: %v", err)
	}
	if err := db.RemoveRoute("A", "B"); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound on second remove, got %v", err)
	}

	if count, _ := db.CountRoutes(); count != 1 {
		t.Errorf("expected 1 route, got %d", count)
	}
	if count, _ := db.CountCities(); count != 3 {
		t.Errorf("expected 3 cities, got %d", count)
	}
}

func TestGetRoute_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRoute("A", "B")
	if !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestLoadSample(t *testing.T) {
	db := setupTestDB(t)
	db.AddRoute(Route{From: "Gotham", To: "Metropolis", Distance: 1})

	if err := db.LoadSample(); err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}

	routes, _ := db.CountRoutes()
	if routes != len(SampleRoutes) {
		t.Errorf("expected %d routes, got %d", len(SampleRoutes), routes)
	}
	cities, _ := db.CountCities()
	if cities != 49 {
		t.Errorf("expected 49 cities, got %d", cities)
	}
	if _, err := db.GetRoute("Gotham", "Metropolis"); !errors.Is(err, ErrRouteNotFound) {
		t.Error("LoadSample kept routes from before")
	}
}

func TestSampleRoutes_AreValidAndUnique(t *testing.T) {
	seen := make(map[Route]bool)
	for _, r := range SampleRoutes {
		if err := r.Validate(); err != nil {
			t.Errorf("sample route %v: %v", r, err)
		}
		key := r.normalize()
		key.Distance = 0
		if seen[key] {
			t.Errorf("duplicate sample pair %s-%s", r.From, r.To)
		}
		seen[key] = true
	}
}

func TestClear(t *testing.T) {
	db := setupTestDB(t)
	db.LoadSample()

	if err := db.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	routes, _ := db.CountRoutes()
	cities, _ := db.CountCities()
	if routes != 0 || cities != 0 {
		t.Errorf("expected empty database, got %d routes and %d cities", routes, cities)
	}
}

func TestOpenDB_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	db.AddRoute(Route{From: "A", To: "B", Distance: 3})
	db.Close()

	db, err = OpenDB(path)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer db.Close()

	if count, _ := db.CountRoutes(); count != 1 {
		t.Errorf("expected 1 route after reopen, got %d", count)
	}
}

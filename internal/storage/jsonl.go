// Package storage persists the route network in SQLite and exchanges it as
// JSONL route files and snapshot documents.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAllRoutes reads all routes from a JSONL file.
func ReadAllRoutes(path string) ([]Route, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file is an empty network
		}
		return nil, fmt.Errorf("opening routes file: %w", err)
	}
	defer f.Close()

	var routes []Route
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var r Route
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		routes = append(routes, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading routes file: %w", err)
	}

	return routes, nil
}

// AppendRoute adds a route to the end of a JSONL file.
func AppendRoute(path string, r Route) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening routes file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding route: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing route: %w", err)
	}
	return nil
}

// WriteAllRoutes writes all routes to a JSONL file, replacing existing content.
func WriteAllRoutes(path string, routes []Route) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating routes file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, r := range routes {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding route %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing route %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing routes file: %w", err)
	}
	return nil
}

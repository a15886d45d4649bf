package storage

import "fmt"

// SampleRoutes is a demonstration network of US cities with approximate
// road distances in miles.
var SampleRoutes = []Route{
	// East coast
	{"Boston", "New York", 215},
	{"New York", "Philadelphia", 95},
	{"Philadelphia", "Baltimore", 100},
	{"Baltimore", "Washington", 40},
	{"Washington", "Richmond", 108},
	{"Richmond", "Charlotte", 298},
	{"Charlotte", "Atlanta", 245},
	{"Atlanta", "Jacksonville", 346},
	{"Jacksonville", "Miami", 345},
	{"Atlanta", "Savannah", 250},

	// Northeast
	{"Boston", "Portland", 103},
	{"New York", "Hartford", 110},
	{"Hartford", "Boston", 100},
	{"Philadelphia", "Pittsburgh", 305},
	{"Baltimore", "Pittsburgh", 247},

	// Mid-Atlantic to Midwest
	{"Pittsburgh", "Cleveland", 134},
	{"Cleveland", "Detroit", 170},
	{"Cleveland", "Columbus", 143},
	{"Columbus", "Cincinnati", 107},
	{"Cincinnati", "Louisville", 100},
	{"Detroit", "Chicago", 283},
	{"Chicago", "Milwaukee", 92},
	{"Milwaukee", "Minneapolis", 340},
	{"Minneapolis", "Madison", 270},
	{"Madison", "Milwaukee", 77},

	// South
	{"Atlanta", "Birmingham", 147},
	{"Birmingham", "Memphis", 242},
	{"Memphis", "Nashville", 210},
	{"Nashville", "Louisville", 175},
	{"Nashville", "Knoxville", 180},
	{"Charlotte", "Raleigh", 165},
	{"Raleigh", "Richmond", 160},

	// Texas
	{"Dallas", "Houston", 239},
	{"Houston", "Austin", 165},
	{"Austin", "San Antonio", 80},
	{"Dallas", "San Antonio", 275},
	{"Dallas", "Oklahoma City", 206},

	// South central
	{"Memphis", "Little Rock", 133},
	{"Little Rock", "Oklahoma City", 342},
	{"Oklahoma City", "Kansas City", 347},
	{"Kansas City", "St Louis", 248},
	{"St Louis", "Chicago", 297},
	{"St Louis", "Memphis", 284},
	{"St Louis", "Indianapolis", 242},
	{"Indianapolis", "Cincinnati", 110},
	{"Indianapolis", "Chicago", 185},

	// Mountain west
	{"Denver", "Colorado Springs", 70},
	{"Denver", "Salt Lake City", 525},
	{"Salt Lake City", "Las Vegas", 420},
	{"Las Vegas", "Phoenix", 297},
	{"Phoenix", "Tucson", 116},
	{"Denver", "Kansas City", 600},

	// West coast
	{"Seattle", "Portland OR", 173},
	{"Portland OR", "San Francisco", 635},
	{"San Francisco", "San Jose", 48},
	{"San Jose", "Los Angeles", 340},
	{"Los Angeles", "San Diego", 120},
	{"San Diego", "Phoenix", 355},
	{"Los Angeles", "Las Vegas", 270},

	// Cross-country
	{"Chicago", "Denver", 1004},
	{"Dallas", "Denver", 781},
	{"Phoenix", "Denver", 602},
	{"Seattle", "Minneapolis", 1641},
	{"San Francisco", "Seattle", 808},
}

// LoadSample replaces the stored network with SampleRoutes.
func (d *DB) LoadSample() error {
	if err := d.Clear(); err != nil {
		return err
	}
	for _, r := range SampleRoutes {
		if err := d.AddRoute(r); err != nil {
			return fmt.Errorf("loading sample route %s-%s: %w", r.From, r.To, err)
		}
	}
	return nil
}

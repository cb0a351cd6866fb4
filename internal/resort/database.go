package resort

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/umahmood/haversine"
)

//go:embed resorts.json
var defaultDatabase []byte

// Database is the loaded resort collection.
type Database struct {
	resorts []Resort
	bySlug  map[string]Resort
}

// LoadDefault loads the resort database embedded in the binary.
func LoadDefault() (*Database, error) {
	return parse(defaultDatabase)
}

// LoadFile loads a resort database from a JSON file, typically one
// produced by the collect-resorts tool.
func LoadFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resorts file: %w", err)
	}
	return parse(data)
}

// Load loads the database at path when path is non-empty, and the
// embedded default otherwise.
func Load(path string) (*Database, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}

func parse(data []byte) (*Database, error) {
	var doc struct {
		Resorts []Resort `json:"resorts"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse resorts database: %w", err)
	}
	if len(doc.Resorts) == 0 {
		return nil, fmt.Errorf("resorts database is empty")
	}

	db := &Database{
		resorts: doc.Resorts,
		bySlug:  make(map[string]Resort, len(doc.Resorts)),
	}
	for _, r := range doc.Resorts {
		db.bySlug[r.Slug()] = r
	}
	return db, nil
}

// All returns every resort, sorted by country then name.
func (db *Database) All() []Resort {
	out := make([]Resort, len(db.resorts))
	copy(out, db.resorts)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ByCountry returns resorts whose country code matches (case
// insensitive). An empty code returns all resorts.
func (db *Database) ByCountry(code string) []Resort {
	if code == "" {
		return db.All()
	}
	code = strings.ToUpper(code)
	var out []Resort
	for _, r := range db.All() {
		if r.Country == code {
			out = append(out, r)
		}
	}
	return out
}

// BySlug looks a resort up by its canonical slug.
func (db *Database) BySlug(slug string) (Resort, bool) {
	r, ok := db.bySlug[slug]
	return r, ok
}

// Nearest returns the resort closest to the given coordinates and its
// distance in miles.
func (db *Database) Nearest(lat, lon float64) (Resort, float64) {
	from := haversine.Coord{Lat: lat, Lon: lon}

	var nearest Resort
	best := -1.0
	for _, r := range db.resorts {
		mi, _ := haversine.Distance(from, haversine.Coord{Lat: r.Latitude, Lon: r.Longitude})
		if best < 0 || mi < best {
			best = mi
			nearest = r
		}
	}
	return nearest, best
}

// Len reports how many resorts are loaded.
func (db *Database) Len() int {
	return len(db.resorts)
}

package resort

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Park City Mountain", "park_city_mountain"},
		{"St Anton", "st_anton"},
		{"Whistler Blackcomb", "whistler_blackcomb"},
		{"Val d'Isère", "val_d_isère"},
		{"  Spaced  Out  ", "spaced_out"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Resort{Name: tc.name}.Slug())
	}
}

func TestVerticalDropFt(t *testing.T) {
	assert.Equal(t, 3226, Resort{ElevationBaseFt: 6800, ElevationPeakFt: 10026}.VerticalDropFt())
	assert.Zero(t, Resort{ElevationBaseFt: 6800}.VerticalDropFt())
}

func TestTimezoneOrUTC(t *testing.T) {
	assert.Equal(t, "America/Denver", Resort{Timezone: "America/Denver"}.TimezoneOrUTC())
	assert.Equal(t, "UTC", Resort{}.TimezoneOrUTC())
}

func TestLoadDefault(t *testing.T) {
	db, err := LoadDefault()
	require.NoError(t, err)
	assert.Greater(t, db.Len(), 5)

	rst, ok := db.BySlug("park_city_mountain")
	require.True(t, ok)
	assert.Equal(t, "US", rst.Country)
	assert.InDelta(t, 40.6514, rst.Latitude, 1e-6)
}

func TestByCountry(t *testing.T) {
	db, err := LoadDefault()
	require.NoError(t, err)

	for _, r := range db.ByCountry("jp") {
		assert.Equal(t, "JP", r.Country)
	}
	assert.NotEmpty(t, db.ByCountry("JP"))
	assert.Empty(t, db.ByCountry("XX"))
	assert.Len(t, db.ByCountry(""), db.Len())
}

func TestAllSorted(t *testing.T) {
	db, err := LoadDefault()
	require.NoError(t, err)

	all := db.All()
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.Country == cur.Country {
			assert.LessOrEqual(t, prev.Name, cur.Name)
		} else {
			assert.Less(t, prev.Country, cur.Country)
		}
	}
}

func TestNearest(t *testing.T) {
	db, err := LoadDefault()
	require.NoError(t, err)

	// Salt Lake City is closest to Park City.
	rst, miles := db.Nearest(40.76, -111.89)
	assert.Equal(t, "park_city_mountain", rst.Slug())
	assert.Less(t, miles, 50.0)

	// Sapporo should land on a Hokkaido resort.
	rst, _ = db.Nearest(43.06, 141.35)
	assert.Equal(t, "JP", rst.Country)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resorts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"resorts": [
			{"name": "Tiny Hill", "country": "US", "region": "VT", "latitude": 44.5, "longitude": -72.8}
		]
	}`), 0o644))

	db, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, db.Len())

	_, ok := db.BySlug("tiny_hill")
	assert.True(t, ok)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/does/not/exist.json")
	assert.Error(t, err)
}

func TestLoadEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resorts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"resorts":[]}`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFallsBackToDefault(t *testing.T) {
	db, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, db.Len(), 0)
}

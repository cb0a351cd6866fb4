// collect-resorts builds a resort database file from OpenStreetMap.
// It queries the Overpass API for ski areas per country, counts lift
// infrastructure around each area, and writes a resorts.json usable
// via POWDER_RESORTS_FILE. Not part of the runtime forecast path.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/hillbillynomad/powder/internal/logger"
	"github.com/hillbillynomad/powder/internal/resort"
)

const overpassURL = "https://overpass-api.de/api/interpreter"

// bounds is (minLat, minLon, maxLat, maxLon).
type bounds [4]float64

// countryBounds are approximate bounding boxes for targeted queries.
var countryBounds = map[string]bounds{
	"FR": {41.3, -5.2, 51.1, 9.6},
	"CH": {45.8, 5.9, 47.8, 10.5},
	"AT": {46.4, 9.5, 49.0, 17.2},
	"IT": {35.5, 6.6, 47.1, 18.5},
	"DE": {47.3, 5.9, 55.1, 15.0},
	"US": {24.5, -125.0, 49.4, -66.9},
	"CA": {41.7, -141.0, 70.0, -52.6},
	"JP": {24.0, 122.9, 45.5, 145.8},
	"AU": {-43.6, 113.2, -10.7, 153.6},
	"NZ": {-47.3, 166.4, -34.4, 178.6},
}

var countryTimezones = map[string]string{
	"FR": "Europe/Paris",
	"CH": "Europe/Zurich",
	"AT": "Europe/Vienna",
	"IT": "Europe/Rome",
	"DE": "Europe/Berlin",
	"US": "America/Denver",
	"CA": "America/Vancouver",
	"JP": "Asia/Tokyo",
	"AU": "Australia/Sydney",
	"NZ": "Pacific/Auckland",
}

func main() {
	var (
		out      = flag.String("out", "resorts.json", "output file")
		country  = flag.String("country", "", "collect a single country code")
		minLifts = flag.Int("min-lifts", 10, "skip areas with fewer lifts")
	)
	flag.Parse()

	geocoder.ApiKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	client := &http.Client{Timeout: 3 * time.Minute}

	codes := make([]string, 0, len(countryBounds))
	if *country != "" {
		if _, ok := countryBounds[*country]; !ok {
			logger.Fatalf("no bounds configured for country %q", *country)
		}
		codes = append(codes, *country)
	} else {
		for code := range countryBounds {
			codes = append(codes, code)
		}
	}

	var resorts []resort.Resort
	for _, code := range codes {
		logger.Infof("collecting %s", code)
		found, err := collectCountry(client, code, countryBounds[code], *minLifts)
		if err != nil {
			logger.Warnf("collect %s: %v", code, err)
			continue
		}
		logger.Infof("%s: kept %d resorts", code, len(found))
		resorts = append(resorts, found...)
	}

	doc := struct {
		Resorts []resort.Resort `json:"resorts"`
	}{Resorts: resorts}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %d resorts to %s\n", len(resorts), *out)
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

func collectCountry(client *http.Client, code string, b bounds, minLifts int) ([]resort.Resort, error) {
	elements, err := querySkiAreas(client, b)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var resorts []resort.Resort
	for _, el := range elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}

		lat, lon := el.Lat, el.Lon
		if el.Center != nil {
			lat, lon = el.Center.Lat, el.Center.Lon
		}
		if lat == 0 && lon == 0 {
			continue
		}

		lifts, err := countLifts(client, lat, lon)
		if err != nil {
			logger.Warnf("count lifts near %s: %v", name, err)
			continue
		}
		if lifts < minLifts {
			continue
		}
		seen[name] = struct{}{}

		region, resolvedCountry := reverseGeocode(lat, lon)
		if resolvedCountry == "" {
			resolvedCountry = code
		}

		resorts = append(resorts, resort.Resort{
			Name:            name,
			Country:         resolvedCountry,
			Region:          region,
			Latitude:        lat,
			Longitude:       lon,
			ElevationBaseFt: fetchElevationFt(client, lat, lon),
			LiftCount:       lifts,
			Timezone:        countryTimezones[code],
		})

		// Overpass asks for politeness between queries.
		time.Sleep(2 * time.Second)
	}

	return resorts, nil
}

func querySkiAreas(client *http.Client, b bounds) ([]overpassElement, error) {
	bbox := fmt.Sprintf("(%f,%f,%f,%f)", b[0], b[1], b[2], b[3])
	query := fmt.Sprintf(`[out:json][timeout:120];
(
  way["landuse"="winter_sports"]%[1]s;
  relation["landuse"="winter_sports"]%[1]s;
  node["sport"="skiing"]["name"]%[1]s;
);
out center tags;`, bbox)

	return runOverpass(client, query)
}

var liftTypes = []string{
	"cable_car", "gondola", "chair_lift", "drag_lift", "t-bar",
	"j-bar", "platter", "rope_tow", "magic_carpet", "funicular",
}

func countLifts(client *http.Client, lat, lon float64) (int, error) {
	const radiusKm = 10.0
	latDelta := radiusKm / 111.0
	lonDelta := radiusKm / 80.0

	bbox := fmt.Sprintf("(%f,%f,%f,%f)", lat-latDelta, lon-lonDelta, lat+latDelta, lon+lonDelta)

	var clauses strings.Builder
	for _, t := range liftTypes {
		fmt.Fprintf(&clauses, "  way[\"aerialway\"=%q]%s;\n", t, bbox)
	}
	query := fmt.Sprintf("[out:json][timeout:60];\n(\n%s);\nout count;", clauses.String())

	elements, err := runOverpass(client, query)
	if err != nil {
		return 0, err
	}
	if len(elements) > 0 {
		if total, ok := elements[0].Tags["total"]; ok {
			n, err := strconv.Atoi(total)
			if err == nil {
				return n, nil
			}
		}
	}
	return len(elements), nil
}

func runOverpass(client *http.Client, query string) ([]overpassElement, error) {
	resp, err := client.PostForm(overpassURL, url.Values{"data": {query}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass status %d", resp.StatusCode)
	}

	var payload struct {
		Elements []overpassElement `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Elements, nil
}

// reverseGeocode resolves region and country code for coordinates via
// the Google geocoding API. Returns empty strings when no API key is
// configured or the lookup fails; the caller falls back to the query
// country.
func reverseGeocode(lat, lon float64) (region, country string) {
	if geocoder.ApiKey == "" {
		return "", ""
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{Latitude: lat, Longitude: lon})
	if err != nil || len(addresses) == 0 {
		return "", ""
	}

	addr := addresses[0]
	return addr.State, countryNameToCode(addr.Country)
}

var countryCodes = map[string]string{
	"France":        "FR",
	"Switzerland":   "CH",
	"Austria":       "AT",
	"Italy":         "IT",
	"Germany":       "DE",
	"United States": "US",
	"Canada":        "CA",
	"Japan":         "JP",
	"Australia":     "AU",
	"New Zealand":   "NZ",
}

func countryNameToCode(name string) string {
	return countryCodes[name]
}

func fetchElevationFt(client *http.Client, lat, lon float64) int {
	u := fmt.Sprintf("https://api.open-elevation.com/api/v1/lookup?locations=%f,%f", lat, lon)
	resp, err := client.Get(u)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Elevation float64 `json:"elevation"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.Results) == 0 {
		return 0
	}
	return int(payload.Results[0].Elevation * 3.28084)
}

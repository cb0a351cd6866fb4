package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
)

var (
	errUnexpectedStatus = errors.New("unexpected status code")
	errNoHTTPClient     = errors.New("http client not configured")
)

// newBreaker builds the per-provider circuit breaker. A tripped breaker
// fails the provider fast so the remaining sources still run; there is
// no retry loop behind it.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// getJSON performs a breaker-guarded GET against u and decodes the JSON
// body into v. Non-2xx statuses and transport errors count as breaker
// failures.
func getJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, u string, header http.Header, v any) error {
	if client == nil {
		return errNoHTTPClient
	}

	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		for k, vals := range header {
			for _, val := range vals {
				req.Header.Add(k, val)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	body, ok := result.([]byte)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	return json.Unmarshal(body, v)
}

// openMeteoDaily is the shared response shape of the Open-Meteo daily
// endpoints (forecast, archive, and the per-model variants). Snowfall
// values are centimeters; null entries are possible and mean zero.
type openMeteoDaily struct {
	Daily struct {
		Time        []string   `json:"time"`
		SnowfallSum []*float64 `json:"snowfall_sum"`
	} `json:"daily"`
}

// observations normalizes the payload into dated inch amounts tagged
// with source. Dates that fail to parse are skipped individually.
func (p openMeteoDaily) observations(source string) []snowfall.Observation {
	n := len(p.Daily.Time)
	if len(p.Daily.SnowfallSum) < n {
		n = len(p.Daily.SnowfallSum)
	}

	obs := make([]snowfall.Observation, 0, n)
	for i := 0; i < n; i++ {
		d, err := snowfall.ParseDay(p.Daily.Time[i])
		if err != nil {
			continue
		}
		var cm float64
		if p.Daily.SnowfallSum[i] != nil {
			cm = *p.Daily.SnowfallSum[i]
		}
		obs = append(obs, snowfall.Observation{
			Date:   d,
			Inches: snowfall.Round1(snowfall.CmToInches(cm)),
			Source: source,
		})
	}
	return obs
}

// fetchDaily requests a daily snowfall forecast from an Open-Meteo
// style endpoint and normalizes the response.
func fetchDaily(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, baseURL, source, timezone string, rst resort.Resort, days int) ([]snowfall.Observation, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(rst.Latitude))
	values.Set("longitude", formatCoord(rst.Longitude))
	values.Set("daily", "snowfall_sum")
	values.Set("timezone", timezone)
	values.Set("forecast_days", strconv.Itoa(days))

	var payload openMeteoDaily
	if err := getJSON(ctx, client, cb, baseURL+"?"+values.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	return payload.observations(source), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

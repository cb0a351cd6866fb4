package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/snowfall"
	"github.com/hillbillynomad/powder/internal/store"
)

var validate = validator.New()

// Deps bundles the collaborators the HTTP handlers need.
type Deps struct {
	Service *snowfall.Service
	Store   *store.MemoryStore
	Resorts *resort.Database

	// SnapshotMaxAge is how old a stored snapshot may be before the
	// forecast handler falls back to a live fetch.
	SnapshotMaxAge time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/resorts", func(c *fiber.Ctx) error {
		country := c.Query("country")
		resorts := deps.Resorts.ByCountry(country)

		out := make([]resortSummary, 0, len(resorts))
		for _, r := range resorts {
			out = append(out, summarize(r))
		}
		return c.JSON(fiber.Map{"resorts": out})
	})

	v1.Get("/resorts/:slug/forecast", func(c *fiber.Ctx) error {
		rst, ok := deps.Resorts.BySlug(c.Params("slug"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown resort")
		}

		var q forecastQuery
		if err := q.bind(c, 7); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, fetchedAt := deps.forecast(c.UserContext(), rst, q.Days)
		return c.JSON(fiber.Map{
			"resort":    summarize(rst),
			"fetchedAt": fetchedAt,
			"days":      days,
		})
	})

	v1.Get("/resorts/:slug/history", func(c *fiber.Ctx) error {
		rst, ok := deps.Resorts.BySlug(c.Params("slug"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown resort")
		}

		var q historyQuery
		if err := q.bind(c, 14); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), time.Minute)
		defer cancel()

		obs := deps.Service.History(ctx, rst, q.Days)
		if obs == nil {
			obs = []snowfall.Observation{}
		}
		return c.JSON(fiber.Map{
			"resort": summarize(rst),
			"days":   obs,
		})
	})
}

// forecast serves the stored snapshot when it is fresh and covers the
// requested horizon, and fetches live otherwise. An empty day list is
// a valid response: it means no source had data.
func (d Deps) forecast(ctx context.Context, rst resort.Resort, days int) ([]snowfall.DailyAggregate, time.Time) {
	if d.Store != nil {
		snap, err := d.Store.Latest(rst.Slug())
		if err == nil && !snap.Stale(d.SnapshotMaxAge) && snap.Horizon >= days {
			out := snap.Days
			if len(out) > days {
				out = out[:days]
			}
			return out, snap.FetchedAt
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, time.Time{}
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	aggregates := d.Service.Forecast(fetchCtx, rst, days)
	if aggregates == nil {
		aggregates = []snowfall.DailyAggregate{}
	}
	return aggregates, time.Now().UTC()
}

type resortSummary struct {
	Slug              string `json:"slug"`
	Name              string `json:"name"`
	Country           string `json:"country"`
	Region            string `json:"region"`
	ElevationBaseFt   int    `json:"elevationBaseFt"`
	ElevationPeakFt   int    `json:"elevationPeakFt"`
	LiftCount         int    `json:"liftCount"`
	AvgSnowfallInches int    `json:"avgSnowfallInches"`
	PassType          string `json:"passType"`
}

func summarize(r resort.Resort) resortSummary {
	return resortSummary{
		Slug:              r.Slug(),
		Name:              r.Name,
		Country:           r.Country,
		Region:            r.Region,
		ElevationBaseFt:   r.ElevationBaseFt,
		ElevationPeakFt:   r.ElevationPeakFt,
		LiftCount:         r.LiftCount,
		AvgSnowfallInches: r.AvgSnowfallInches,
		PassType:          r.PassType,
	}
}

// forecastQuery holds the forecast endpoint's query parameters.
type forecastQuery struct {
	Days int `validate:"min=1,max=16"`
}

func (q *forecastQuery) bind(c *fiber.Ctx, def int) error {
	q.Days = c.QueryInt("days", def)
	return validate.Struct(q)
}

// historyQuery holds the history endpoint's query parameters.
type historyQuery struct {
	Days int `validate:"min=1,max=90"`
}

func (q *historyQuery) bind(c *fiber.Ctx, def int) error {
	q.Days = c.QueryInt("days", def)
	return validate.Struct(q)
}

package providers

import (
	"net/http"

	"github.com/hillbillynomad/powder/internal/snowfall"
)

// DefaultCapabilities builds the static provider table. The global
// models always apply; the regional models are gated on the resort's
// country code. Table order is invocation order.
func DefaultCapabilities(client *http.Client) []snowfall.Capability {
	openMeteo := NewOpenMeteoProvider(client)
	ecmwf := NewECMWFProvider(client)
	nws := NewNWSProvider(client)
	icon := NewICONProvider(client)
	jma := NewJMAProvider(client)
	bom := NewBOMProvider(client)

	return []snowfall.Capability{
		{Provider: openMeteo, MaxDays: openMeteo.MaxDays(), Applies: snowfall.Always},
		{Provider: ecmwf, MaxDays: ecmwf.MaxDays(), Applies: snowfall.Always},
		{Provider: nws, MaxDays: 0, Applies: snowfall.CountryIn("US")},
		{Provider: icon, MaxDays: icon.MaxDays(), Applies: snowfall.CountryIn(EuropeanCountries...)},
		{Provider: jma, MaxDays: jma.MaxDays(), Applies: snowfall.CountryIn("JP")},
		{Provider: bom, MaxDays: bom.MaxDays(), Applies: snowfall.CountryIn("AU", "NZ")},
	}
}

// DefaultHistory builds the archive-backed historical provider.
func DefaultHistory(client *http.Client) snowfall.HistoricalProvider {
	return NewOpenMeteoProvider(client)
}

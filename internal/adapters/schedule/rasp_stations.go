package schedule

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"transit-route-service/internal/domain"
	"transit-route-service/internal/platform/obs"
)

type stationsResponse struct {
	Countries []struct {
		Regions []struct {
			Settlements []struct {
				Title string `json:"title"`
				Codes struct {
					YandexCode string `json:"yandex_code"`
				} `json:"codes"`
				Coords *struct {
					Lat float64 `json:"lat"`
					Lon float64 `json:"lon"`
				} `json:"coords"`
			} `json:"settlements"`
		} `json:"regions"`
	} `json:"countries"`
}

// FetchCities downloads the full settlement directory.
// Only settlements carrying a city-level yandex code ("c" prefix) are kept;
// entries without a usable title or code are skipped, not fatal.
func (p *RaspProvider) FetchCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time("rasp.FetchCities")(&err)

	var decoded stationsResponse
	if err := p.getJSON(ctx, "/stations_list/", url.Values{}, &decoded); err != nil {
		return nil, fmt.Errorf("fetch cities: %w", err)
	}

	var cities []domain.City
	for _, country := range decoded.Countries {
		for _, region := range country.Regions {
			for _, settlement := range region.Settlements {
				code := settlement.Codes.YandexCode
				if settlement.Title == "" || !strings.HasPrefix(code, "c") {
					continue
				}

				city := domain.City{
					Name: settlement.Title,
					ID:   code,
				}
				if settlement.Coords != nil {
					city.Coords = &domain.Coordinates{
						Lat: settlement.Coords.Lat,
						Lon: settlement.Coords.Lon,
					}
				}
				cities = append(cities, city)
			}
		}
	}

	return cities, nil
}

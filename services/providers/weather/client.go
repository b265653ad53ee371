package weather

import (
	"context"
	"fmt"
	"strings"

	"baseball-preview-go/logcolors"
	"baseball-preview-go/services/providers"

	log "github.com/sirupsen/logrus"
)

// coords is a ballpark's location
type coords struct {
	Lat float64
	Lon float64
}

var ballparkCoords = map[string]coords{
	"Yankee Stadium":          {40.8296, -73.9262},
	"Fenway Park":             {42.3467, -71.0972},
	"Camden Yards":            {39.2839, -76.6217},
	"Tropicana Field":         {27.7682, -82.6534},
	"Rogers Centre":           {43.6414, -79.3894},
	"Progressive Field":       {41.4962, -81.6852},
	"Target Field":            {44.9817, -93.2776},
	"Guaranteed Rate Field":   {41.8299, -87.6338},
	"Comerica Park":           {42.3391, -83.0485},
	"Kauffman Stadium":        {39.0517, -94.4803},
	"Minute Maid Park":        {29.7573, -95.3555},
	"Globe Life Field":        {32.7471, -97.0825},
	"T-Mobile Park":           {47.5914, -122.3325},
	"Angel Stadium":           {33.8003, -117.8827},
	"Oakland Coliseum":        {37.7516, -122.2005},
	"Truist Park":             {33.8906, -84.4677},
	"Citizens Bank Park":      {39.9061, -75.1665},
	"Citi Field":              {40.7571, -73.8458},
	"loanDepot park":          {25.7781, -80.2197},
	"Nationals Park":          {38.8730, -77.0074},
	"American Family Field":   {43.0280, -87.9712},
	"Busch Stadium":           {38.6226, -90.1928},
	"Wrigley Field":           {41.9484, -87.6553},
	"Great American Ball Park": {39.0974, -84.5068},
	"PNC Park":                {40.4469, -80.0057},
	"Dodger Stadium":          {34.0739, -118.2400},
	"Petco Park":              {32.7076, -117.1566},
	"Oracle Park":             {37.7786, -122.3893},
	"Coors Field":             {39.7559, -104.9942},
	"Chase Field":             {33.4453, -112.0667},
}

// BallparkCoords reports whether a venue has a known location
func BallparkCoords(venue string) (lat, lon float64, ok bool) {
	c, found := ballparkCoords[venue]
	return c.Lat, c.Lon, found
}

// Client is the NOAA weather.gov adapter. NOAA's flow is two requests: a
// points lookup converting coordinates to a forecast grid, then the hourly
// forecast for that grid.
type Client struct {
	f *providers.Fetcher
}

// New creates a NOAA client. NOAA requires a User-Agent on the fetcher.
func New(f *providers.Fetcher) *Client {
	return &Client{f: f}
}

type pointsResponse struct {
	Properties struct {
		Forecast       string `json:"forecast"`
		ForecastHourly string `json:"forecastHourly"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []struct {
			Temperature     int    `json:"temperature"`
			TemperatureUnit string `json:"temperatureUnit"`
		} `json:"periods"`
	} `json:"properties"`
}

// ForecastTemperature returns the next forecast temperature (Fahrenheit) at
// a ballpark. Unknown venues and empty forecasts report ok=false without an
// error; the preview degrades by omitting the temperature.
func (c *Client) ForecastTemperature(ctx context.Context, venue string) (int, bool, error) {
	lat, lon, ok := BallparkCoords(venue)
	if !ok {
		log.Warnf("%s No coordinates for venue %q", logcolors.LogWeather, venue)
		return 0, false, nil
	}

	var points pointsResponse
	pointsEndpoint := fmt.Sprintf("/points/%.4f,%.4f", lat, lon)
	if err := c.f.GetJSON(ctx, pointsEndpoint, nil, &points); err != nil {
		return 0, false, err
	}

	forecastURL := points.Properties.ForecastHourly
	if forecastURL == "" {
		forecastURL = points.Properties.Forecast
	}
	if forecastURL == "" {
		return 0, false, providers.NewProviderError("weather", fmt.Sprintf("no forecast grid for %s", venue), nil)
	}

	// NOAA returns absolute forecast URLs on its own host
	endpoint := strings.TrimPrefix(forecastURL, c.f.BaseURL)

	var forecast forecastResponse
	if err := c.f.GetJSON(ctx, endpoint, nil, &forecast); err != nil {
		return 0, false, err
	}

	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		log.Warnf("%s No forecast periods for %s", logcolors.LogWeather, venue)
		return 0, false, nil
	}

	temp := periods[0].Temperature
	log.Infof("%s %s: %d°F", logcolors.LogWeather, venue, temp)
	return temp, true, nil
}

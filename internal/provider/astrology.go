package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spotbulle/pitchmatch/internal/config"
	"github.com/spotbulle/pitchmatch/internal/domain"
)

// PlanetPosition is one body's placement in a natal chart.
type PlanetPosition struct {
	Sign   string  `json:"sign"`
	House  int     `json:"house"`
	Degree float64 `json:"degree"`
}

// HousePosition is one house cusp in a natal chart.
type HousePosition struct {
	Number int     `json:"number"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// Chart is the normalized natal chart used by the profile stage. Mock
// marks the deterministic fallback chart produced without the provider.
type Chart struct {
	Sun       PlanetPosition
	Moon      PlanetPosition
	Ascendant PlanetPosition
	Planets   map[string]PlanetPosition
	Houses    []HousePosition
	Mock      bool
	Source    string // api, fallback
}

// BirthInput carries the subject parameters for chart calculation.
type BirthInput struct {
	Date      time.Time
	Hour      int
	Minute    int
	Latitude  float64
	Longitude float64
	City      string
	Country   string
	Timezone  string
}

// AstrologyClient calls the RapidAPI astrologer natal chart endpoint.
type AstrologyClient struct {
	client  *resty.Client
	apiKey  string
	baseURL string
	host    string
}

// NewAstrologyClient creates a new chart calculation client.
func NewAstrologyClient(cfg *config.AstrologyConfig) *AstrologyClient {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://astrologer.p.rapidapi.com/api/v4"
	}

	return &AstrologyClient{
		client:  client,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		host:    cfg.Host,
	}
}

// Configured reports whether an API key is present.
func (c *AstrologyClient) Configured() bool {
	return c.apiKey != ""
}

type astrologerSubject struct {
	Year                   int     `json:"year"`
	Month                  int     `json:"month"`
	Day                    int     `json:"day"`
	Hour                   int     `json:"hour"`
	Minute                 int     `json:"minute"`
	Longitude              float64 `json:"longitude"`
	Latitude               float64 `json:"latitude"`
	City                   string  `json:"city"`
	Nation                 string  `json:"nation"`
	Timezone               string  `json:"timezone"`
	Name                   string  `json:"name"`
	ZodiacType             string  `json:"zodiac_type"`
	HousesSystemIdentifier string  `json:"houses_system_identifier"`
}

type astrologerRequest struct {
	Subject astrologerSubject `json:"subject"`
}

type astrologerBody struct {
	Sign   string  `json:"sign"`
	House  int     `json:"house"`
	Degree float64 `json:"degree"`
}

type astrologerResponse struct {
	Sun       *astrologerBody            `json:"sun"`
	Moon      *astrologerBody            `json:"moon"`
	Ascendant *astrologerBody            `json:"ascendant"`
	Planets   map[string]*astrologerBody `json:"planets"`
	Houses    []struct {
		Number int     `json:"number"`
		Sign   string  `json:"sign"`
		Degree float64 `json:"degree"`
	} `json:"houses"`
	Message string `json:"message"`
}

// CalculateChart calls the chart service. Transport failures, non-200
// statuses, and responses missing the three canonical bodies are all
// errors; the caller decides whether to substitute the fallback chart.
func (c *AstrologyClient) CalculateChart(ctx context.Context, input BirthInput) (*Chart, error) {
	req := astrologerRequest{
		Subject: astrologerSubject{
			Year:                   input.Date.Year(),
			Month:                  int(input.Date.Month()),
			Day:                    input.Date.Day(),
			Hour:                   input.Hour,
			Minute:                 input.Minute,
			Longitude:              input.Longitude,
			Latitude:               input.Latitude,
			City:                   input.City,
			Nation:                 input.Country,
			Timezone:               input.Timezone,
			Name:                   "User",
			ZodiacType:             "Tropic",
			HousesSystemIdentifier: "P",
		},
	}

	var resp astrologerResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-RapidAPI-Host", c.host).
		SetHeader("x-rapidapi-key", c.apiKey).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(c.baseURL + "/natal-aspects-data")

	if err != nil {
		return nil, fmt.Errorf("failed to call astrology API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Message != "" {
			return nil, fmt.Errorf("astrology API error: %s", resp.Message)
		}
		return nil, fmt.Errorf("astrology API error: status %d", httpResp.StatusCode())
	}

	if resp.Sun == nil || resp.Moon == nil || resp.Ascendant == nil {
		return nil, fmt.Errorf("astrology API response missing canonical bodies")
	}

	chart := &Chart{
		Sun:       PlanetPosition(*resp.Sun),
		Moon:      PlanetPosition(*resp.Moon),
		Ascendant: PlanetPosition(*resp.Ascendant),
		Planets:   make(map[string]PlanetPosition, len(resp.Planets)),
		Source:    "api",
	}
	for name, body := range resp.Planets {
		if body != nil {
			chart.Planets[name] = PlanetPosition(*body)
		}
	}
	for _, h := range resp.Houses {
		chart.Houses = append(chart.Houses, HousePosition{
			Number: h.Number,
			Sign:   h.Sign,
			Degree: h.Degree,
		})
	}

	return chart, nil
}

// FallbackChart builds a deterministic placeholder chart seeded from the
// birth date. Identical birth dates yield identical charts; the data is
// flagged non-authoritative.
func FallbackChart(birthDate time.Time) *Chart {
	signs := domain.ZodiacSigns
	seed := int(birthDate.UnixMilli() % 12)
	if seed < 0 {
		seed += 12
	}

	chart := &Chart{
		Sun:       PlanetPosition{Sign: signs[seed], House: 1, Degree: float64(seed * 30 % 360)},
		Moon:      PlanetPosition{Sign: signs[(seed+4)%12], House: 4, Degree: float64((seed + 4) * 30 % 360)},
		Ascendant: PlanetPosition{Sign: signs[(seed+8)%12], Degree: float64((seed + 8) * 30 % 360)},
		Planets: map[string]PlanetPosition{
			"mercure": {Sign: signs[(seed+1)%12], House: 1, Degree: float64((seed + 1) * 30 % 360)},
			"venus":   {Sign: signs[(seed+2)%12], House: 2, Degree: float64((seed + 2) * 30 % 360)},
			"mars":    {Sign: signs[(seed+3)%12], House: 1, Degree: float64((seed + 3) * 30 % 360)},
			"jupiter": {Sign: signs[(seed+5)%12], House: 9, Degree: float64((seed + 5) * 30 % 360)},
			"saturne": {Sign: signs[(seed+6)%12], House: 10, Degree: float64((seed + 6) * 30 % 360)},
		},
		Mock:   true,
		Source: "fallback",
	}

	for i := 0; i < 12; i++ {
		chart.Houses = append(chart.Houses, HousePosition{
			Number: i + 1,
			Sign:   signs[(seed+i)%12],
			Degree: float64(i * 30 % 360),
		})
	}

	return chart
}

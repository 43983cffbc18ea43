package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tripgenie/internal/models/response_models"
	"tripgenie/pkg/utils"
)

const (
	defaultMapsBaseURL        = "https://maps.googleapis.com/maps/api"
	defaultGeocodeConcurrency = 8
)

type MapsServiceInterface interface {
	FindAgencies(ctx context.Context, destination string) (*response_models.AgenciesResponse, error)
	Geocode(ctx context.Context, locations []string) (*response_models.CoordinatesResponse, error)
}

// GoogleMapsClient talks to the Places Text Search and Geocoding web services.
type GoogleMapsClient struct {
	HTTP        *http.Client
	APIKey      string
	BaseURL     string
	Concurrency int
	logger      *zap.Logger
}

func NewGoogleMapsClient(apiKey, baseURL string, concurrency int, timeout time.Duration, logger *zap.Logger) MapsServiceInterface {
	if baseURL == "" {
		baseURL = defaultMapsBaseURL
	}
	if concurrency <= 0 {
		concurrency = defaultGeocodeConcurrency
	}
	return &GoogleMapsClient{
		HTTP:        &http.Client{Timeout: timeout},
		APIKey:      apiKey,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Concurrency: concurrency,
		logger:      logger,
	}
}

type placesTextSearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
	} `json:"results"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleMapsClient) FindAgencies(ctx context.Context, destination string) (*response_models.AgenciesResponse, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: maps API key not configured", utils.ErrUpstream)
	}

	q := url.Values{}
	q.Set("query", "travel agencies in "+destination)
	q.Set("key", c.APIKey)

	var body placesTextSearchResponse
	if err := c.getJSON(ctx, "/place/textsearch/json", q, &body); err != nil {
		return nil, err
	}

	switch body.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("%w: places status %s %s", utils.ErrUpstream, body.Status, body.ErrorMessage)
	}

	agencies := make([]response_models.Agency, 0, len(body.Results))
	for _, r := range body.Results {
		agencies = append(agencies, response_models.Agency{
			Name:        r.Name,
			Address:     r.FormattedAddress,
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
		})
	}
	return &response_models.AgenciesResponse{Agencies: agencies}, nil
}

// Geocode resolves every location concurrently. Locations that cannot be
// resolved are left out; the order of the rest follows the input.
func (c *GoogleMapsClient) Geocode(ctx context.Context, locations []string) (*response_models.CoordinatesResponse, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: maps API key not configured", utils.ErrUpstream)
	}

	resolved := make([]*response_models.Coordinate, len(locations))
	g := new(errgroup.Group)
	g.SetLimit(c.Concurrency)

	for i, loc := range locations {
		g.Go(func() error {
			coord, err := c.geocodeOne(ctx, loc)
			if err != nil {
				c.logger.Warn("geocode failed", zap.String("location", loc), zap.Error(err))
				return nil
			}
			resolved[i] = coord
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: geocode: %v", utils.ErrUpstream, err)
	}

	coordinates := make([]response_models.Coordinate, 0, len(locations))
	for _, coord := range resolved {
		if coord != nil {
			coordinates = append(coordinates, *coord)
		}
	}
	return &response_models.CoordinatesResponse{Coordinates: coordinates}, nil
}

var errNotResolved = errors.New("location not resolved")

func (c *GoogleMapsClient) geocodeOne(ctx context.Context, location string) (*response_models.Coordinate, error) {
	q := url.Values{}
	q.Set("address", location)
	q.Set("key", c.APIKey)

	var body geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", q, &body); err != nil {
		return nil, err
	}
	if body.Status != "OK" || len(body.Results) == 0 {
		return nil, fmt.Errorf("%w: status %s", errNotResolved, body.Status)
	}

	loc := body.Results[0].Geometry.Location
	return &response_models.Coordinate{Name: location, Lat: loc.Lat, Lng: loc.Lng}, nil
}

func (c *GoogleMapsClient) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", utils.ErrUpstream, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		// url.Error repeats the query string, which carries the key
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("%w: %s: %v", utils.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", utils.ErrUpstream, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", utils.ErrUpstream, path, err)
	}
	return nil
}

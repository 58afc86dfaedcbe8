package nearby

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"localmart/internal/structs"
	"localmart/pkg/config"
	"localmart/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultPlacesBaseURL = "https://maps.googleapis.com"

	// maxPlaces caps how many upstream results are folded into one response.
	maxPlaces = 20
)

type (
	placesResponse struct {
		Status  string        `json:"status"`
		Results []placeResult `json:"results"`
	}

	placeResult struct {
		PlaceID  string   `json:"place_id"`
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Types    []string `json:"types"`
		Photos   []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	}

	// placesClient wraps the Google Places nearby search endpoint. The
	// base url is configurable so tests can point it at a local server.
	placesClient struct {
		logger  logger.Logger
		baseURL string
		apiKey  string
		client  *http.Client
	}
)

func newPlacesClient(cfg config.IConfig, log logger.Logger) *placesClient {
	baseURL := cfg.GetString("places.base_url")
	if baseURL == "" {
		baseURL = defaultPlacesBaseURL
	}
	return &placesClient{
		logger:  log,
		baseURL: baseURL,
		apiKey:  cfg.GetString("places.api_key"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *placesClient) NearbySearch(ctx context.Context, req structs.NearbyRequest) ([]structs.NearbyShop, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("places api key is not set")
	}

	radius := req.RadiusM
	if radius <= 0 {
		radius = 5000
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", req.Latitude, req.Longitude))
	q.Set("radius", fmt.Sprintf("%d", radius))
	q.Set("type", "store")
	q.Set("key", p.apiKey)

	endpoint := p.baseURL + "/maps/api/place/nearbysearch/json?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, _ := io.ReadAll(httpResp.Body)
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		p.logger.Error(ctx, "places endpoint returned non-2xx", zap.Int("status", httpResp.StatusCode), zap.ByteString("body", body))
		return nil, fmt.Errorf("places endpoint returned %d", httpResp.StatusCode)
	}

	var resp placesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		p.logger.Error(ctx, "failed to unmarshal places response", zap.Error(err))
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places request failed: %s", resp.Status)
	}

	shops := make([]structs.NearbyShop, 0, len(resp.Results))
	for _, result := range resp.Results {
		if result.PlaceID == "" || result.Name == "" {
			continue
		}
		lat, lng := result.Geometry.Location.Lat, result.Geometry.Location.Lng
		shops = append(shops, structs.NearbyShop{
			Name:      result.Name,
			Location:  result.Vicinity,
			Category:  primaryType(result.Types),
			ImgUrl:    p.photoURL(result),
			Latitude:  &lat,
			Longitude: &lng,
			PlaceID:   result.PlaceID,
		})
		if len(shops) == maxPlaces {
			break
		}
	}
	return shops, nil
}

func (p *placesClient) photoURL(result placeResult) string {
	if len(result.Photos) == 0 || result.Photos[0].PhotoReference == "" {
		return ""
	}
	q := url.Values{}
	q.Set("maxwidth", "400")
	q.Set("photo_reference", result.Photos[0].PhotoReference)
	q.Set("key", p.apiKey)
	return p.baseURL + "/maps/api/place/photo?" + q.Encode()
}

// primaryType picks the first place type that is not a generic marker.
func primaryType(types []string) string {
	for _, t := range types {
		switch t {
		case "point_of_interest", "establishment":
			continue
		default:
			return t
		}
	}
	return "store"
}

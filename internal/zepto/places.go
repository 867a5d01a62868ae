// internal/zepto/places.go
package zepto

import (
	"context"
	"encoding/json"
	"net/url"

	nethttp "net/http"

	stderrors "zepto-scraper/internal/common/errors"
)

type autocompleteResponse struct {
	Predictions []struct {
		PlaceID string `json:"place_id"`
	} `json:"predictions"`
}

type placeDetailsResponse struct {
	Result struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// ResolveCoordinates maps a postal code to latitude/longitude through the
// place autocomplete and place details endpoints. Both steps share one
// freshly generated identity and run exactly once: these endpoints are
// low-variance, so any failure is terminal rather than retried. There is
// no partial success: either both coordinates come back or neither does.
func (c *Client) ResolveCoordinates(ctx context.Context, pincode string) (*Coordinate, error) {
	id := c.newIdentity()

	params := url.Values{}
	params.Set("place_name", pincode)

	resp, err := c.get(ctx, c.cfg.MapsBaseURL, "/api/v1/maps/place/autocomplete/", params, id, "")
	if err != nil {
		c.logger.WithError(err).Error("place autocomplete request failed", map[string]interface{}{"pincode": pincode})
		return nil, stderrors.NewTransportError(err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, stderrors.NewTransportError(err)
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, stderrors.NewUpstreamStatusError(resp.StatusCode)
	}

	var auto autocompleteResponse
	if err := json.Unmarshal(body, &auto); err != nil {
		return nil, stderrors.NewMalformedResponseError("autocomplete body not parseable")
	}
	if len(auto.Predictions) == 0 || auto.Predictions[0].PlaceID == "" {
		return nil, stderrors.NewMalformedResponseError("autocomplete returned no predictions")
	}
	placeID := auto.Predictions[0].PlaceID

	c.logger.Info("resolved place id", map[string]interface{}{
		"pincode": pincode,
		"placeId": placeID,
	})

	params = url.Values{}
	params.Set("place_id", placeID)

	resp, err = c.get(ctx, c.cfg.MapsBaseURL, "/api/v1/maps/place/details/", params, id, "")
	if err != nil {
		c.logger.WithError(err).Error("place details request failed", map[string]interface{}{"pincode": pincode})
		return nil, stderrors.NewTransportError(err)
	}
	body, err = readBody(resp)
	if err != nil {
		return nil, stderrors.NewTransportError(err)
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, stderrors.NewUpstreamStatusError(resp.StatusCode)
	}

	var details placeDetailsResponse
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, stderrors.NewMalformedResponseError("place details body not parseable")
	}

	loc := details.Result.Geometry.Location
	if loc.Lat == 0 && loc.Lng == 0 {
		return nil, stderrors.NewMalformedResponseError("place details missing location")
	}

	c.logger.Info("resolved coordinates", map[string]interface{}{
		"pincode":   pincode,
		"latitude":  loc.Lat,
		"longitude": loc.Lng,
	})

	return &Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

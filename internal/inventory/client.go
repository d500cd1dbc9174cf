package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/flightapp/booking/internal/domain"
)

// Client is the typed capability the orchestrator holds on the
// remotely owned seat inventory.
type Client interface {
	// GetByID returns a point-in-time snapshot of a flight.
	GetByID(ctx context.Context, flightID int64) (*domain.FlightInventory, error)
	// ReduceSeats is the single authority on availability: it succeeds
	// iff availableSeats >= n at the instant of execution and
	// decrements exactly n. A false result means insufficient seats,
	// not an outage.
	ReduceSeats(ctx context.Context, flightID int64, n int) (bool, error)
	// RestoreSeats unconditionally increments the available count.
	RestoreSeats(ctx context.Context, flightID int64, n int) (bool, error)
}

// HTTPClient consumes the flight service inventory endpoints.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) GetByID(ctx context.Context, flightID int64) (*domain.FlightInventory, error) {
	endpoint := fmt.Sprintf("%s/api/flights/inventory/%d", c.baseURL, flightID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrFlightNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: inventory returned %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var flight domain.FlightInventory
	if err := json.NewDecoder(resp.Body).Decode(&flight); err != nil {
		return nil, fmt.Errorf("decode inventory response: %w", err)
	}
	return &flight, nil
}

func (c *HTTPClient) ReduceSeats(ctx context.Context, flightID int64, n int) (bool, error) {
	return c.adjustSeats(ctx, flightID, n, "reduce-seats")
}

func (c *HTTPClient) RestoreSeats(ctx context.Context, flightID int64, n int) (bool, error) {
	return c.adjustSeats(ctx, flightID, n, "restore-seats")
}

func (c *HTTPClient) adjustSeats(ctx context.Context, flightID int64, n int, op string) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/flights/inventory/%d/%s?%s", c.baseURL, flightID, op,
		url.Values{"seats": []string{strconv.Itoa(n)}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: inventory returned %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	var ok bool
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return false, fmt.Errorf("decode %s response: %w", op, err)
	}
	return ok, nil
}

var _ Client = (*HTTPClient)(nil)

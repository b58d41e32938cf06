package heatmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout bounds each individual API request.
const defaultTimeout = 5 * time.Second

// Client reads outlet state and power figures from the management API
// using HTTP Basic authentication.
type Client struct {
	baseURL  string
	pduID    string
	username string
	password string
	http     *http.Client
}

// OutletData is one outlet's live figures. Power and Energy are nil
// when the corresponding sensor could not be read.
type OutletData struct {
	Outlet    int
	State     string
	PowerW    *float64
	EnergyKWh *float64
}

// On reports whether the outlet state reads as energised. Unknown
// states count as on so a reporting glitch never paints a live outlet
// as dead.
func (d OutletData) On() bool {
	switch strings.ToLower(strings.TrimSpace(d.State)) {
	case "enabled", "on", "up":
		return true
	case "disabled", "off", "down":
		return false
	}
	return true
}

// NewClient builds a Client for one unit.
//
// Parameters:
//   - baseURL: API root, e.g. "http://127.0.0.1:8000"
//   - pduID: Unit identifier as it appears in resource paths
//   - username, password: HTTP Basic credentials
//
// Returns:
//   - *Client: Ready to poll
func NewClient(baseURL, pduID, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		pduID:    pduID,
		username: username,
		password: password,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// outletResource is the subset of an outlet payload the viewer needs.
type outletResource struct {
	Status struct {
		State string `json:"State"`
	} `json:"Status"`
	State string `json:"State"`
}

// sensorResource is the subset of a sensor payload the viewer needs.
type sensorResource struct {
	Reading *float64 `json:"Reading"`
}

// get performs one authenticated GET and decodes the body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", path, err)
	}
	return nil
}

// Outlet fetches one outlet's state plus its power and energy sensors.
// A missing sensor leaves the figure nil rather than failing the whole
// outlet.
func (c *Client) Outlet(ctx context.Context, outlet int) (OutletData, error) {
	base := fmt.Sprintf("/redfish/v1/PowerEquipment/RackPDUs/%s", c.pduID)

	var o outletResource
	if err := c.get(ctx, fmt.Sprintf("%s/Outlets/%d", base, outlet), &o); err != nil {
		return OutletData{}, err
	}
	state := o.Status.State
	if state == "" {
		state = o.State
	}
	if state == "" {
		state = "Unknown"
	}

	data := OutletData{Outlet: outlet, State: state}

	var power sensorResource
	if err := c.get(ctx, fmt.Sprintf("%s/Sensors/PowerOUTLET%d", base, outlet), &power); err == nil {
		data.PowerW = power.Reading
	}
	var energy sensorResource
	if err := c.get(ctx, fmt.Sprintf("%s/Sensors/EnergyOUTLET%d", base, outlet), &energy); err == nil {
		data.EnergyKWh = energy.Reading
	}

	return data, nil
}

// Snapshot fetches all outlets in index order.
//
// Parameters:
//   - ctx: Cancels the poll mid-flight
//   - count: Number of outlets on the unit
//
// Returns:
//   - map[int]OutletData: Keyed by outlet index, 1-based
//   - error: First outlet fetch that failed
func (c *Client) Snapshot(ctx context.Context, count int) (map[int]OutletData, error) {
	data := make(map[int]OutletData, count)
	for n := 1; n <= count; n++ {
		od, err := c.Outlet(ctx, n)
		if err != nil {
			return nil, err
		}
		data[n] = od
	}
	return data, nil
}

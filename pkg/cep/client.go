// Package cep resolves Brazilian postal codes (CEP) to a street address and
// geographic coordinates, using ViaCEP for the address lookup and Nominatim
// for forward geocoding.
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

type Result struct {
	Street       string
	Neighborhood string
	City         string
	State        string
	Lat          *float64
	Lon          *float64
}

type Client interface {
	FetchAddress(ctx context.Context, cep string) (*Result, error)
}

type client struct {
	httpClient    *http.Client
	viaCEPBase    string
	nominatimBase string
	userAgent     string
}

func NewClient(viaCEPBase, nominatimBase, userAgent string, timeout time.Duration) Client {
	return &client{
		httpClient:    &http.Client{Timeout: timeout},
		viaCEPBase:    viaCEPBase,
		nominatimBase: nominatimBase,
		userAgent:     userAgent,
	}
}

var nonDigits = regexp.MustCompile(`\D`)

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// FetchAddress resolves the CEP to an address, then forward-geocodes the
// full address. A missing geocode is not an error: the result simply has no
// coordinates and the caller decides what that means.
func (c *client) FetchAddress(ctx context.Context, cep string) (*Result, error) {
	cleanCEP := nonDigits.ReplaceAllString(cep, "")
	if cleanCEP == "" {
		return nil, fmt.Errorf("invalid CEP: %q", cep)
	}

	viaCEP, err := c.lookupCEP(ctx, cleanCEP)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Street:       viaCEP.Logradouro,
		Neighborhood: viaCEP.Bairro,
		City:         viaCEP.Localidade,
		State:        viaCEP.UF,
	}

	lat, lon, err := c.geocode(ctx, viaCEP)
	if err != nil {
		return nil, err
	}

	result.Lat = lat
	result.Lon = lon

	return result, nil
}

func (c *client) lookupCEP(ctx context.Context, cleanCEP string) (*viaCEPResponse, error) {
	endpoint := fmt.Sprintf("%s/ws/%s/json/", c.viaCEPBase, cleanCEP)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ViaCEP request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ViaCEP request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ViaCEP returned status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode ViaCEP response: %w", err)
	}

	if body.Erro {
		return nil, fmt.Errorf("CEP not found: %s", cleanCEP)
	}

	return &body, nil
}

func (c *client) geocode(ctx context.Context, addr *viaCEPResponse) (*float64, *float64, error) {
	query := fmt.Sprintf("%s, %s, %s - %s, Brazil", addr.Logradouro, addr.Bairro, addr.Localidade, addr.UF)

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.nominatimBase, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	// Nominatim usage policy requires an identifying agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("geocoding request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("geocoding returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &lat, &lon, nil
}

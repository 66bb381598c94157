// Command seeder fills an empty deployment with sample packages and cars by
// driving the CMS API the way an editor would.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// PackageDraft is the CMS draft for a tour package.
type PackageDraft struct {
	Title        string  `json:"title"`
	Destination  string  `json:"destination"`
	Duration     string  `json:"duration"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	MaxTravelers int     `json:"maxTravelers"`
	Status       string  `json:"status"`
}

// CarDraft is the CMS draft for a rental car.
type CarDraft struct {
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	PricePerDay  float64  `json:"pricePerDay"`
	Seats        int      `json:"seats"`
	FuelType     string   `json:"fuelType"`
	Transmission string   `json:"transmission"`
	Features     []string `json:"features"`
	Status       string   `json:"status"`
}

var samplePackages = []PackageDraft{
	{"Riviera Escape", "Himare", "5 days", 1200, "Beaches and coves along the Albanian Riviera.", 6, "published"},
	{"Ksamil Islands", "Ksamil", "3 days", 650, "Island hopping and boat trips off Ksamil.", 8, "published"},
	{"Stone City Heritage", "Gjirokaster", "2 days", 420, "Castle, bazaar and Ottoman houses.", 10, "published"},
	{"Alps Trek", "Theth", "7 days", 2400, "Guided trek from Theth to Valbona with mountain guesthouses.", 4, "published"},
	{"Berat Wine Weekend", "Berat", "2 days", 1800, "Cellar visits above the thousand windows city.", 6, "draft"},
}

var sampleCars = []CarDraft{
	{"Fiat Panda", "Fiat", "Panda", 35, 4, "Petrol", "Manual", []string{"Air Conditioning"}, "published"},
	{"VW Golf", "Volkswagen", "Golf", 55, 5, "Diesel", "Manual", []string{"Bluetooth", "Cruise Control"}, "published"},
	{"Toyota RAV4 Hybrid", "Toyota", "RAV4", 95, 5, "Hybrid", "Automatic", []string{"4x4", "GPS"}, "published"},
	{"BMW X5", "BMW", "X5", 180, 5, "Diesel", "Automatic", []string{"Leather Seats", "GPS", "Parking Sensors"}, "published"},
	{"Tesla Model 3", "Tesla", "Model 3", 150, 5, "Electric", "Automatic", []string{"Autopilot"}, "draft"},
}

// Client drives the CMS API with a staff token.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		buf = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTP.Do(req)
}

func (c *Client) expect(method, path string, body any, status int) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != status {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(email, password string) error {
	resp, err := c.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if result.Token == "" {
		return fmt.Errorf("login response has no token")
	}
	c.Token = result.Token
	return nil
}

// Create opens the add modal on tab, fills the draft and saves it.
func (c *Client) Create(tab string, draft any) error {
	base := "/cms/" + tab + "/modal"
	if err := c.expect(http.MethodPost, base, nil, http.StatusOK); err != nil {
		return err
	}
	if err := c.expect(http.MethodPut, base, draft, http.StatusOK); err != nil {
		_ = c.expect(http.MethodDelete, base, nil, http.StatusOK)
		return err
	}
	if err := c.expect(http.MethodPost, base+"/save", nil, http.StatusOK); err != nil {
		_ = c.expect(http.MethodDelete, base, nil, http.StatusOK)
		return err
	}
	return nil
}

// Seed creates every sample record and returns how many were created.
func Seed(c *Client) int {
	created := 0
	for _, p := range samplePackages {
		if err := c.Create("packages", p); err != nil {
			log.WithError(err).WithField("title", p.Title).Error("Failed to create package")
			continue
		}
		log.WithFields(log.Fields{"title": p.Title, "destination": p.Destination}).Info("Created package")
		created++
	}
	for _, car := range sampleCars {
		if err := c.Create("cars", car); err != nil {
			log.WithError(err).WithField("name", car.Name).Error("Failed to create car")
			continue
		}
		log.WithFields(log.Fields{"brand": car.Brand, "model": car.Model}).Info("Created car")
		created++
	}
	return created
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	client := &Client{
		BaseURL: strings.TrimRight(apiURL, "/"),
		Token:   os.Getenv("SEED_AUTH_TOKEN"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
	if client.Token == "" {
		if err := client.Login(os.Getenv("SEED_EMAIL"), os.Getenv("SEED_PASSWORD")); err != nil {
			log.WithError(err).Fatal("Set SEED_AUTH_TOKEN or SEED_EMAIL and SEED_PASSWORD")
		}
	}

	log.WithField("api_url", client.BaseURL).Info("Seeding catalog")
	created := Seed(client)
	log.WithFields(log.Fields{
		"created": created,
		"total":   len(samplePackages) + len(sampleCars),
	}).Info("Seeding completed")
	if created == 0 {
		os.Exit(1)
	}
}

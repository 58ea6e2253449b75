package inference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
)

type DamageEstimate struct {
	DamageType    string  `json:"damage_type"`
	Severity      string  `json:"severity"`
	EstimatedCost float64 `json:"estimated_cost"`
	Description   string  `json:"description"`
}

type CarSearchFilters struct {
	Category       string  `json:"category"`
	Make           string  `json:"make"`
	MaxPricePerDay float64 `json:"max_price_per_day"`
	MinYear        int     `json:"min_year"`
}

type estimateRequest struct {
	Images      []string `json:"images"`
	Description string   `json:"description"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// EstimateDamage asks the inference collaborator for a repair-cost estimate.
// Callers treat a failure as "no estimate"; a report is never blocked on it.
func EstimateDamage(images []string, description string) (*DamageEstimate, error) {
	body, err := json.Marshal(estimateRequest{Images: images, Description: description})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal estimate payload: %v", err)
	}

	respBody, err := post("/v1/estimate-damage", body)
	if err != nil {
		return nil, err
	}

	var estimate DamageEstimate
	if err := json.Unmarshal(respBody, &estimate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal estimate response: %v", err)
	}
	return &estimate, nil
}

// SearchCars turns a natural-language query into structured inventory filters.
func SearchCars(query string) (*CarSearchFilters, error) {
	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search payload: %v", err)
	}

	respBody, err := post("/v1/search-cars", body)
	if err != nil {
		return nil, err
	}

	var filters CarSearchFilters
	if err := json.Unmarshal(respBody, &filters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %v", err)
	}
	return &filters, nil
}

func post(path string, body []byte) ([]byte, error) {
	baseURL := config.Config("AI_SERVICE_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("AI_SERVICE_BASE_URL is not set in .env")
	}

	req, err := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.Config("AI_SERVICE_API_KEY"))

	client := &http.Client{Timeout: 8 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Inference API error: %s", string(respBody))
		return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}
	return respBody, nil
}

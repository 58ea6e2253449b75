package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
)

type GatewayOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

type GatewayPayment struct {
	ID       string  `json:"id"`
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

const gatewayCaptured = "captured"

// CreateGatewayOrder registers a collect intent with the gateway. The
// idempotency key makes a retried call land on the same gateway order, so one
// retry on a transport failure is safe. Non-2xx responses are never retried.
func CreateGatewayOrder(amount float64, currency, idempotencyKey string) (*GatewayOrder, error) {
	order, err := postGatewayOrder(amount, currency, idempotencyKey)
	if err == nil {
		return order, nil
	}

	if isNetworkError(err) {
		log.Printf("Gateway order creation failed on transport, retrying once: %v", err)
		return postGatewayOrder(amount, currency, idempotencyKey)
	}
	return nil, err
}

func postGatewayOrder(amount float64, currency, idempotencyKey string) (*GatewayOrder, error) {
	baseURL := config.Config("PAYMENT_GATEWAY_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("PAYMENT_GATEWAY_BASE_URL is not set in .env")
	}

	payload := createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  idempotencyKey,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %v", err)
	}

	req, err := http.NewRequest("POST", baseURL+"/v1/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %v", err)
	}
	req.SetBasicAuth(config.Config("PAYMENT_GATEWAY_KEY_ID"), config.Config("PAYMENT_GATEWAY_KEY_SECRET"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", idempotencyKey)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Gateway API error: %s", string(respBody))
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %v", err)
	}
	return &order, nil
}

// FetchGatewayPayment reads the gateway's view of a payment. Used by the UPI
// rail before settling, so a confirm call never trusts bare client input.
func FetchGatewayPayment(paymentID string) (*GatewayPayment, error) {
	baseURL := config.Config("PAYMENT_GATEWAY_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("PAYMENT_GATEWAY_BASE_URL is not set in .env")
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/payments/%s", baseURL, paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %v", err)
	}
	req.SetBasicAuth(config.Config("PAYMENT_GATEWAY_KEY_ID"), config.Config("PAYMENT_GATEWAY_KEY_SECRET"))

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Gateway API error: %s", string(respBody))
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var payment GatewayPayment
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment response: %v", err)
	}
	return &payment, nil
}

// IsCaptured reports whether the gateway considers the payment collected.
func (p *GatewayPayment) IsCaptured() bool {
	return p.Status == gatewayCaptured
}

func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

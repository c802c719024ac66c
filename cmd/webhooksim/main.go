// Command webhooksim sends a signed PAYMENT_SUCCESS_WEBHOOK for an order to a
// locally running relay, replacing the real provider during development:
//
//	webhooksim -o ORD1 -s test_webhook_secret -u http://localhost:3000
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/payrelay/internal/middleware"
	"github.com/ivanpodgorny/payrelay/internal/security"
)

func main() {
	var (
		orderID = flag.String("o", "", "order id to report as PAID")
		secret  = flag.String("s", os.Getenv("WEBHOOK_SECRET"), "webhook signing secret")
		baseURL = flag.String("u", "http://localhost:3000", "relay base URL")
	)
	flag.Parse()

	if *orderID == "" {
		log.Fatal("order id is required, pass it with -o")
	}

	if err := send(*orderID, *secret, *baseURL); err != nil {
		log.Fatal(err)
	}
}

func send(orderID, secret, baseURL string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"order": map[string]any{
				"order_id":                 orderID,
				"order_status":             "PAID",
				"order_amount":             1.00,
				"order_currency":           "INR",
				"order_status_update_time": now,
			},
			"payment": map[string]any{
				"payment_id":     fmt.Sprintf("payment_%d", time.Now().UnixMilli()),
				"payment_status": "SUCCESS",
				"payment_method": "UPI",
				"payment_time":   now,
			},
			"customer_details": map[string]any{
				"customer_id":    "test_customer",
				"customer_phone": "9090407368",
				"customer_email": "test@example.com",
			},
		},
		"event_time": now,
		"type":       "PAYMENT_SUCCESS_WEBHOOK",
	})
	if err != nil {
		return err
	}

	verifier := security.NewWebhookVerifier(secret)
	resp, err := req.C().
		SetBaseURL(baseURL).
		R().
		SetHeader(middleware.SignatureHeader, verifier.Sign(payload)).
		SetContentType("application/json").
		SetBodyBytes(payload).
		Post("/webhook/payment")
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", resp.Status, resp.String())

	return nil
}

package lambdahttp

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"lambda-router/pkg/router"

	"github.com/aws/aws-lambda-go/events"
)

// TestFromProxyRequest tests event normalization including base64
// inbound bodies.
func TestFromProxyRequest(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		Path:                  "/items/42",
		HTTPMethod:            "POST",
		Headers:               map[string]string{"Accept-Encoding": "gzip"},
		QueryStringParameters: map[string]string{"verbose": "1"},
		Body:                  "payload",
	}

	req, err := FromProxyRequest(event)
	if err != nil {
		t.Fatalf("FromProxyRequest failed: %v", err)
	}
	if req.Path != "/items/42" || req.Method != "POST" {
		t.Errorf("Unexpected request: %+v", req)
	}
	if string(req.Body) != "payload" {
		t.Errorf("Expected raw body, got %q", req.Body)
	}

	event.Body = base64.StdEncoding.EncodeToString([]byte("binary"))
	event.IsBase64Encoded = true
	req, err = FromProxyRequest(event)
	if err != nil {
		t.Fatalf("FromProxyRequest failed: %v", err)
	}
	if string(req.Body) != "binary" {
		t.Errorf("Expected decoded body, got %q", req.Body)
	}

	event.Body = "not base64!!!"
	if _, err := FromProxyRequest(event); err == nil {
		t.Error("Expected malformed base64 body to fail")
	}
}

// TestHandlerRoundTrip tests a full event-in, response-out pass through
// the dispatcher.
func TestHandlerRoundTrip(t *testing.T) {
	table := router.NewRouteTable(nil)
	handler := func(args []interface{}, params map[string]interface{}) (*router.Outcome, error) {
		return &router.Outcome{Status: router.StatusOK, ContentType: "text/plain", Body: []byte("Yo")}, nil
	}
	if err := table.Register("/", handler, &router.RouteOptions{CORS: true}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	fn := Handler(router.New(table, router.Config{}))
	resp, err := fn(context.Background(), events.APIGatewayProxyRequest{Path: "/", HTTPMethod: "GET"})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if resp.StatusCode != 200 || resp.Body != "Yo" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("Expected CORS header on response")
	}

	resp, err = fn(context.Background(), events.APIGatewayProxyRequest{Path: "/missing", HTTPMethod: "GET"})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if resp.StatusCode != 400 || !strings.Contains(resp.Body, "/missing") {
		t.Errorf("Expected 400 naming the path, got %+v", resp)
	}
}

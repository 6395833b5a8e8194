// Package lambdahttp bridges the AWS API Gateway proxy invocation
// envelope and the router's request/response types.
package lambdahttp

import (
	"context"
	"encoding/base64"
	"fmt"

	"lambda-router/pkg/router"

	"github.com/aws/aws-lambda-go/events"
)

// FromProxyRequest converts an API Gateway proxy event into a router
// request. Base64-encoded inbound bodies are decoded before dispatch.
func FromProxyRequest(event events.APIGatewayProxyRequest) (*router.Request, error) {
	var body []byte
	if event.Body != "" {
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(event.Body)
			if err != nil {
				return nil, fmt.Errorf("decode request body: %w", err)
			}
			body = decoded
		} else {
			body = []byte(event.Body)
		}
	}

	return &router.Request{
		Path:        event.Path,
		Method:      event.HTTPMethod,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
	}, nil
}

// ToProxyResponse converts a response envelope into the API Gateway
// proxy response record.
func ToProxyResponse(env *router.Envelope) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      env.StatusCode,
		Headers:         env.Headers,
		Body:            string(env.Body),
		IsBase64Encoded: env.IsBase64Encoded,
	}
}

// Handler wraps a dispatcher as an aws-lambda-go handler function
// suitable for lambda.Start. A malformed event body maps to a 400
// envelope; the handler itself never returns an error.
func Handler(d *router.Dispatcher) func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := FromProxyRequest(event)
		if err != nil {
			env := router.BuildResponse(router.StatusNOK, "application/json",
				[]byte(`{"errorMessage": "Malformed request body"}`), router.Policy{})
			return ToProxyResponse(env), nil
		}
		return ToProxyResponse(d.Dispatch(req)), nil
	}
}

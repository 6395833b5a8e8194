package main

import (
	"os"

	"lambda-router/internal/config"
	"lambda-router/internal/handlers"
	"lambda-router/internal/logging"
	"lambda-router/pkg/lambdahttp"
	"lambda-router/pkg/router"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var dispatcher *router.Dispatcher

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// The Lambda runtime prefixes its own timestamps.
	log := logging.New(cfg.LogLevel, os.Stdout, !config.RunningInLambda())

	table := router.NewRouteTable(log)
	if err := handlers.RegisterRoutes(table, handlers.New(log)); err != nil {
		panic("Failed to register routes: " + err.Error())
	}

	dispatcher = router.New(table, router.Config{
		Logger: log,
		Token:  config.TokenProvider(),
	})
}

func main() {
	awslambda.Start(lambdahttp.Handler(dispatcher))
}

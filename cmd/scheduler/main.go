package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog"

	"github.com/alarmhub/alarm-scheduler/pkg/dispatcher"
	"github.com/alarmhub/alarm-scheduler/pkg/eventsapi"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	// The environment name qualifies the executor function lookup,
	// e.g. "alarmsExecuter-dev".
	env := os.Getenv("ENV")
	if env == "" {
		logger.Fatal().Msg("ENV environment variable must be set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load AWS configuration")
	}

	opts := []dispatcher.Option{dispatcher.WithLogger(logger)}
	if name := os.Getenv("EXECUTOR_FUNCTION"); name != "" {
		opts = append(opts, dispatcher.WithExecutorName(name))
	}

	d := dispatcher.New(
		eventsapi.NewClient(eventbridge.NewFromConfig(cfg)),
		awslambda.NewFromConfig(cfg),
		env,
		opts...,
	)
	lambda.Start(d.Handle)
}

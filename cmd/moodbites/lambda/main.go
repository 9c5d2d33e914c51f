package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"moodbites"
	"moodbites/session"
)

type Results struct {
	Results []moodbites.CallResult `json:"results"`
	Error   string                 `json:"error,omitempty"`
}

func main() {
	fn := func(ctx context.Context, script moodbites.Script) (Results, error) {
		storeConfig, appConfig, err := moodbites.LoadConfig()
		if err != nil {
			return Results{}, err
		}
		if storeConfig.Backend != moodbites.BackendS3 {
			slog.Warn("SETUP: Lambda running without the s3 backend, state will not survive the invocation", "backend", storeConfig.Backend)
		}

		otelShutdown, err := moodbites.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		app, err := moodbites.NewApp(ctx, storeConfig, appConfig, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			slog.Error("SETUP: Failed to build app", "error", err)
			return Results{}, err
		}

		results, runErr := session.NewRunner(app.Registry, moodbites.NewStdoutActionLogger()).Run(ctx, script.Calls)
		if err := app.Close(ctx); err != nil {
			return Results{}, errors.Join(runErr, err)
		}

		out := Results{Results: results}
		if runErr != nil {
			slog.Error("RESULT: Error handling script", "error", runErr)
			out.Error = runErr.Error()
		}
		return out, nil
	}

	lambda.Start(fn)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"

	"moodbites"
	"moodbites/session"
	"moodbites/tools"
)

const usage = `usage:
  moodbites tools                  list available tools
  moodbites <tool> [json-input]    run a single tool
  moodbites run <script.json>      run a script of calls`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1:]); err != nil {
		slog.Error("RESULT: Error handling command", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	storeConfig, appConfig, err := moodbites.LoadConfig()
	if err != nil {
		return err
	}

	otelShutdown, err := moodbites.InitOtel(ctx)
	if err != nil {
		return fmt.Errorf("initialize OpenTelemetry: %w", err)
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	ctx, span := otel.Tracer(moodbites.TracerName).Start(ctx, "moodbites.cli")
	defer span.End()

	app, err := moodbites.NewApp(ctx, storeConfig, appConfig, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			slog.Error("SETUP: Failed to flush stores", "error", err)
		}
	}()

	if args[0] == "tools" {
		for _, t := range app.Registry.GetTools() {
			fmt.Printf("%-22s %s\n", t.Name(), t.Description())
		}
		return nil
	}

	calls, err := parseCalls(args)
	if err != nil {
		return err
	}

	logger, cleanup, err := newActionLogger(appConfig.ActionLogDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("Failed to flush action log", "error", err)
		}
	}()

	results, runErr := session.NewRunner(app.Registry, logger).Run(ctx, calls)
	if appConfig.Debug {
		moodbites.Dump(os.Stderr, results)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"results": results}); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func parseCalls(args []string) ([]tools.Call, error) {
	if args[0] == "run" {
		if len(args) < 2 {
			return nil, errors.New("run requires a script path")
		}
		b, err := os.ReadFile(args[1])
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		var script moodbites.Script
		if err := json.Unmarshal(b, &script); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
		return script.Calls, nil
	}

	call := tools.Call{Name: args[0], Input: map[string]any{}}
	if len(args) > 1 {
		if err := json.Unmarshal([]byte(args[1]), &call.Input); err != nil {
			return nil, fmt.Errorf("parse input for %s: %w", call.Name, err)
		}
	}
	return []tools.Call{call}, nil
}

func newActionLogger(dir string) (moodbites.ActionLogger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to create log dir: %w", err)
	}
	logFilePath := moodbites.NewActionLogFilePath(filepath.Clean(dir))
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := moodbites.NewFileActionLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}

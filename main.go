package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	app "github.com/rocketscienceinc/tictactoe-client/internal"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the client.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	configPath := pflag.StringP("config", "c", "config.yml", "path to the YAML config file")
	logFile := pflag.String("log-file", "", "write logs to this file instead of stderr")
	pflag.Parse()

	conf := initConfig(*configPath)
	logger, closeLog := initLogger(conf, *logFile)
	defer closeLog()

	if err := app.RunApp(logger, conf, os.Stdin, os.Stdout); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config. A missing file falls back to environment variables and defaults.
func initConfig(path string) *config.Config {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.MustLoadEnv()
	}

	return config.MustLoad(path)
}

// initialize logger. Logs stay off stdout, which belongs to the console.
func initLogger(conf *config.Config, path string) (*slog.Logger, func()) {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	}

	out := os.Stderr
	closeLog := func() {}

	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}

		out = file
		closeLog = func() { _ = file.Close() }
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), closeLog
}

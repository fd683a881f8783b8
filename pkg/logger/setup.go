package logger

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Setup builds a logger from CLI-style settings.
func Setup(level string, json, source bool) Logger {
	lvl := InfoLevel
	switch level {
	case "debug":
		lvl = DebugLevel
	case "warn":
		lvl = WarnLevel
	case "error":
		lvl = ErrorLevel
	}
	cfg := DefaultConfig()
	cfg.Level = lvl
	cfg.JSON = json
	cfg.AddSource = source
	return New(cfg)
}

// FlagsFromCommand extracts the shared logging flags registered on a command.
func FlagsFromCommand(cmd *cobra.Command) (level string, json, source bool, err error) {
	level, err = cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	json, err = cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	source, err = cmd.Flags().GetBool("log-source")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-source flag: %w", err)
	}
	return level, json, source, nil
}

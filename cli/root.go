package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sakhi",
		Short: "Sakhi conversational health-assistant backend",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Local development convenience; missing .env is fine.
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	root.PersistentFlags().Bool("log-source", false, "include caller locations in logs")

	root.AddCommand(
		ServeCmd(),
		SeedCmd(),
	)
	return root
}

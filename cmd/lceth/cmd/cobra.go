package cmd

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

var log = logging.Logger("lceth/cmd")

var logLevel string

var rootCmd = &cobra.Command{
	Use:          "lceth",
	Short:        "inspect light client header, transaction and block encodings",
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return logging.SetLogLevel("lceth/cmd", logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(decodeCmd, hashCmd)
}

// Execute : apply commands
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(-1)
	}
}

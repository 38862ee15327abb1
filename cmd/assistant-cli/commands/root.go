// Package commands implements the assistant-cli subcommands.
package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/storefront-ai/assistant-service/cmd/assistant-cli/ui"
	"github.com/storefront-ai/assistant-service/internal/pkg/logging"
)

var (
	catalogFile string
	shopDomain  string
	language    string
	verbose     bool
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "assistant-cli",
	Short: "Local tooling for the storefront assistant",
	Long: `assistant-cli classifies messages, runs product discovery and holds a full chat
session against a catalog snapshot file, with an in-memory cache and a canned LLM.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Init(noColor)
		level := "error"
		if verbose {
			level = "debug"
		}
		logging.Setup(logging.Options{Level: level, Format: "console", Service: "assistant-cli", Output: logOutput(cmd)})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "catalog.json", "catalog snapshot file")
	rootCmd.PersistentFlags().StringVar(&shopDomain, "domain", "local.myshopify.com", "shop domain used for product links")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "reply language (en or ar, detected when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func logOutput(cmd *cobra.Command) io.Writer {
	if verbose {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}

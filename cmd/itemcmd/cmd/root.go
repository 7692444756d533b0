package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	catalogFlag  string
	logLevelFlag string
	noColorFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "itemcmd",
	Short: "Item lookup for /item, /wiki and /market",
	Long: "Resolves free-text item names against the game's item catalog and runs the\n" +
		"/item (dictionary), /wiki and /market chat commands from a terminal or over MCP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", colorRed, colorReset, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "",
		"catalog source: a JSON/YAML file (optionally .gz) or bolt:<db>[#bucket/key] (overrides ITEMCMD_CATALOG)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"disabled, trace, debug, info, warn or error (overrides ITEMCMD_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(wikiCmd)
	rootCmd.AddCommand(marketCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

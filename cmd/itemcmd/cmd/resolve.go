package cmd

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/claytono/go-itemcmd/internal/resolve"
	"github.com/claytono/go-itemcmd/internal/suggest"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <query...>",
	Short: "Show how a query resolves",
	Long: "Resolves the query against the item catalog without performing any action.\n" +
		"Unresolved queries get spelling suggestions unless ITEMCMD_SUGGEST=false.",
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print the result as JSON")
}

func runResolve(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("resolve needs an item name")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	idx := a.ix.Current()
	res := resolve.New(a.logger).Resolve(query, idx)

	var suggestions []string
	if res.Kind == resolve.Unresolved && a.cfg.Suggest {
		suggestions = suggest.New(idx).Suggest(query)
	}

	if resolveJSON {
		data, err := json.MarshalIndent(res.Report(suggestions), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), formatResult(res, suggestions, useColor()))
	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/claytono/go-itemcmd/internal/command"
	"github.com/claytono/go-itemcmd/internal/dispatch"
	"github.com/spf13/cobra"
)

var itemCmd = newCommandCmd(command.Dictionary,
	"Open the dictionary entry for an item",
	"Resolves the query and shows the item's dictionary card. Ambiguous queries list the\n"+
		"matching items instead; queries that match nothing do nothing.")

var wikiCmd = newCommandCmd(command.Wiki,
	"Open the wiki page for an item",
	"Resolves the query and opens the item's wiki page in the browser. Queries that match\n"+
		"nothing open a page named after the query.")

var marketCmd = newCommandCmd(command.Market,
	"Open the marketplace for an item",
	"Resolves the query and opens the item's marketplace page (ITEMCMD_MARKET_URL) or\n"+
		"prints the item when no marketplace URL is configured.")

// newCommandCmd builds the subcommand that runs one chat command kind.
func newCommandCmd(kind command.Kind, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   strings.TrimPrefix(kind.Keyword(), "/") + " <query...>",
		Short: short,
		Long:  long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, kind, strings.Join(args, " "))
		},
	}
}

func runCommand(cmd *cobra.Command, kind command.Kind, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("%s needs an item name", kind.Keyword())
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	d, err := a.dispatcher(a.terminal(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	out, err := d.Run(cmd.Context(), command.Command{Kind: kind, Arg: query})
	if err != nil {
		return err
	}
	if out.Action == dispatch.ActionSkipped {
		fmt.Fprintln(cmd.ErrOrStderr(), formatSkipped(out, useColor()))
	}
	return nil
}

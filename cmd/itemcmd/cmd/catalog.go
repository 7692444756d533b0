package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/claytono/go-itemcmd/internal/query"
)

var (
	listSearch  string
	listFilters []string
	listFields  []string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the item catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items",
	Long: "Lists items in catalog order.\n\n" +
		"  --filter field=value    exact match\n" +
		"  --filter field~=text    case-insensitive substring\n" +
		"  --filter field/=regex   regular expression\n\n" +
		"Fields: name, hrid, category, description, sell_price, level.",
	Args: cobra.NoArgs,
	RunE: runCatalogList,
}

var catalogInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the catalog source, size and load time",
	Args:  cobra.NoArgs,
	RunE:  runCatalogInfo,
}

func init() {
	catalogListCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive text search across fields")
	catalogListCmd.Flags().StringArrayVar(&listFilters, "filter", nil, "field filter (repeatable)")
	catalogListCmd.Flags().StringSliceVar(&listFields, "fields", []string{"name", "hrid", "category"}, "columns to show")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogInfoCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	filter, err := query.ParseFilters(listFilters)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	c := a.ix.Catalog()
	if c == nil {
		return errNoCatalog(a.cfg.Catalog)
	}

	rows := query.Items(c.Items(), query.Options{Filter: filter, Search: listSearch, Fields: listFields})

	headers := make([]any, len(listFields))
	for i, f := range listFields {
		headers[i] = f
	}
	tbl := table.New(headers...).WithWriter(cmd.OutOrStdout())
	for _, row := range rows {
		cells := make([]any, len(listFields))
		for i, f := range listFields {
			if v, ok := row[f]; ok {
				cells[i] = v
			} else {
				cells[i] = ""
			}
		}
		tbl.AddRow(cells...)
	}
	tbl.Print()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s of %s items\n", humanize.Comma(int64(len(rows))), humanize.Comma(int64(c.Len())))
	return nil
}

func runCatalogInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	src := a.ix.Source()
	if src == nil {
		return errNoCatalog("")
	}

	out := cmd.OutOrStdout()
	color := useColor()
	fmt.Fprintf(out, "%s\n", paint(color, colorBold, "Item catalog"))
	fmt.Fprintf(out, "  Source:   %s\n", src.String())

	loadedAt, ok := a.ix.LoadedAt()
	if !ok {
		fmt.Fprintf(out, "  Status:   %s\n", paint(color, colorYellow, "unavailable (see log for details)"))
		return nil
	}
	fmt.Fprintf(out, "  Status:   %s\n", paint(color, colorGreen, "loaded"))
	fmt.Fprintf(out, "  Items:    %s\n", humanize.Comma(int64(a.ix.Catalog().Len())))
	fmt.Fprintf(out, "  Names:    %s\n", humanize.Comma(int64(a.ix.Current().Len())))
	fmt.Fprintf(out, "  Loaded:   %s\n", humanize.Time(loadedAt))
	return nil
}

func errNoCatalog(source string) error {
	if source == "" {
		return fmt.Errorf("no catalog configured (set ITEMCMD_CATALOG or --catalog)")
	}
	return fmt.Errorf("catalog %s could not be loaded; run with --log-level warn for details", strings.TrimSpace(source))
}

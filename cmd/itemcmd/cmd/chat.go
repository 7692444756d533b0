package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claytono/go-itemcmd/internal/dispatch"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Read chat lines from stdin and run item commands",
	Long: "Reads one chat line at a time. Lines starting with /item, /wiki or /market are run;\n" +
		"anything else is echoed as sent. The catalog is reloaded when its file changes.",
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	a.watch(ctx)
	defer a.ix.Close()

	out := cmd.OutOrStdout()
	d, err := a.dispatcher(a.terminal(out))
	if err != nil {
		return err
	}
	color := useColor()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		res, ok, err := d.HandleLine(ctx, line)
		switch {
		case !ok:
			fmt.Fprintln(out, formatSent(line, color))
		case err != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		case res.Action == dispatch.ActionSkipped:
			a.logger.Debug("chat: command skipped", "line", line)
		}
	}
	return scanner.Err()
}

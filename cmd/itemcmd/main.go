// itemcmd resolves free-text item names for the /item, /wiki and /market
// chat commands and runs them from a terminal or as an MCP server.
package main

import (
	"os"

	"github.com/claytono/go-itemcmd/cmd/itemcmd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

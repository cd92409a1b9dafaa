package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	bootstrapcmd "github.com/stokaro/tabula/cmd/bootstrap"
	migratecmd "github.com/stokaro/tabula/cmd/migrate"
)

var rootCmd = &cobra.Command{
	Use:   "tabula",
	Short: "Typed data access, migrations and account bootstrap for PostgreSQL",
	Long: `Tabula is a typed data-access layer over PostgreSQL with a forward-only
migration framework and an account bootstrap operation.

Available commands:
  migrate    - Apply pending database migrations
  bootstrap  - Create the first account and its superuser`,
}

func main() {
	rootCmd.AddCommand(migratecmd.NewMigrateCommand())
	rootCmd.AddCommand(bootstrapcmd.NewBootstrapCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

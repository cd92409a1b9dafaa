package migrate

import (
	"context"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/stokaro/tabula/bootstrap"
	"github.com/stokaro/tabula/config"
	"github.com/stokaro/tabula/dbconn"
	"github.com/stokaro/tabula/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply every pending migration in sequence order.

Each migration runs in its own transaction together with its ledger record,
so a migration and its bookkeeping commit together or not at all. Migrations
already present in the ledger are skipped.

The database connection is configured through TABULA_DB_HOST, TABULA_DB_PORT,
TABULA_DB_USER, TABULA_DB_PASS and the optional TABULA_DB_NAME.`,
	RunE: runMigrate,
}

const statusFlag = "status"

var migrateFlags = map[string]cobraflags.Flag{
	statusFlag: &cobraflags.BoolFlag{
		Name:  statusFlag,
		Value: false,
		Usage: "Show applied and pending migrations without applying anything",
	},
}

// NewMigrateCommand returns the migrate command.
func NewMigrateCommand() *cobra.Command {
	cobraflags.RegisterMap(migrateCmd, migrateFlags)
	return migrateCmd
}

func definitions() *migrate.Registry {
	return migrate.NewRegistry(bootstrap.InitialSchema())
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := dbconn.Open(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	runner := migrate.NewRunner(db)
	if err := runner.Initialize(ctx); err != nil {
		return err
	}

	registry := definitions()
	if migrateFlags[statusFlag].GetBool() {
		return printStatus(ctx, runner, registry)
	}

	if err := runner.ApplyAll(ctx, registry); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("All migrations applied")
	return nil
}

func printStatus(ctx context.Context, runner *migrate.Runner, registry *migrate.Registry) error {
	status, err := runner.GetStatus(ctx, registry)
	if err != nil {
		return err
	}
	fmt.Printf("Applied: %d, pending: %d\n", len(status.Applied), len(status.Pending))

	records, err := runner.Records(ctx)
	if err != nil {
		return err
	}
	for rec := range records {
		fmt.Printf("  %4d  %-40s  %s\n", rec.SeqOrder, rec.Name, rec.AppliedOn.Format("2006-01-02 15:04:05"))
	}
	for _, seq := range status.Pending {
		fmt.Printf("  %4d  (pending)\n", seq)
	}
	return nil
}

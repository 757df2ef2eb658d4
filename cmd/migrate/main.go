package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/johnquangdev/smart-insights/internal/infrastructure/database"
	"github.com/johnquangdev/smart-insights/migrations"
	"github.com/johnquangdev/smart-insights/pkg/config"
)

var serviceDefaults = map[string]config.ServiceDefaults{
	migrations.ServiceInvoice: {DBDriver: config.DriverPostgres, DBName: "invoices"},
	migrations.ServiceMeeting: {DBDriver: config.DriverSQLite, DBName: "meetings"},
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		service string
		upMax   int
		downMax int
	)

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply versioned SQL migrations for the invoice or meeting database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&service, "service", migrations.ServiceInvoice, "service schema to migrate (invoice|meeting)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), service, migrate.Up, upMax)
		},
	}
	up.Flags().IntVar(&upMax, "max", 0, "maximum number of migrations to apply (0 = all)")

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), service, migrate.Down, downMax)
		},
	}
	down.Flags().IntVar(&downMax, "max", 1, "maximum number of migrations to roll back (0 = all)")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printStatus(cmd.Context(), service)
		},
	}

	root.AddCommand(up, down, status)
	return root
}

func open(ctx context.Context, service string) (*gorm.DB, *config.Config, migrate.MigrationSource, error) {
	defaults, ok := serviceDefaults[service]
	if !ok {
		return nil, nil, nil, fmt.Errorf("unknown service %q", service)
	}

	cfg, err := config.Load(defaults)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	source, err := migrations.Source(service, cfg.Database.Driver)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Println("✅ Database connected successfully")
	return db, cfg, source, nil
}

func run(ctx context.Context, service string, direction migrate.MigrationDirection, limit int) error {
	db, cfg, source, err := open(ctx, service)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	n, err := database.RunMigrations(db, database.Dialect(cfg.Database.Driver), source, direction, limit)
	if err != nil {
		return err
	}

	verb := "applied"
	if direction == migrate.Down {
		verb = "rolled back"
	}
	log.Printf("✅ Successfully %s %d migration(s) for %s", verb, n, service)
	return nil
}

func printStatus(ctx context.Context, service string) error {
	db, cfg, _, err := open(ctx, service)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	records, err := database.MigrationStatus(db, database.Dialect(cfg.Database.Driver))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\n", r.Id, r.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/socops/ticket-analytics/internal/analytics"
	"github.com/socops/ticket-analytics/internal/config"
	"github.com/socops/ticket-analytics/internal/dataset"
	"github.com/socops/ticket-analytics/internal/domain"
	"github.com/socops/ticket-analytics/internal/fixtures"
	"github.com/socops/ticket-analytics/internal/observability"
	"github.com/socops/ticket-analytics/internal/persistence"
	"github.com/socops/ticket-analytics/internal/repository"
)

var (
	seed     uint64
	outDir   string
	compress string
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fixturegen",
	Short: "Generate synthetic ticket datasets",
	Long: `fixturegen writes synthetic ticket and heartbeat CSV files in the layout
the API loads at startup, and can import them into Postgres.

Files ending in .gz or .zst are compressed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := observability.NewLogger(config.LoggerConfig{Level: "info", Format: "console", Service: "fixturegen"})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Generate main ticket data",
	Long: `Generate main ticket records created during the year before now.

Examples:
  fixturegen tickets --count 5000
  fixturegen tickets --split --compress zst --dir data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		split, _ := cmd.Flags().GetBool("split")
		if count <= 0 {
			return fmt.Errorf("--count must be positive, got %d", count)
		}

		tickets := fixtures.NewGenerator(seed, time.Now()).Tickets(count)
		if !split {
			return write("ticket_data.csv", tickets)
		}
		parts := fixtures.SplitByCSP(tickets)
		for _, csp := range domain.KnownCSPs {
			if err := write(fileName(csp, "ticket_data.csv"), parts[csp]); err != nil {
				return err
			}
		}
		return nil
	},
}

var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Generate heartbeat check data for every provider",
	Long: `Generate one heartbeat check every two hours between --start and --end
for each provider. About 5% of checks fail.

Examples:
  fixturegen heartbeat --start 2024-06-01
  fixturegen heartbeat --start 2025-01-01 --end 2025-02-01 --compress gz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startRaw, _ := cmd.Flags().GetString("start")
		endRaw, _ := cmd.Flags().GetString("end")

		r := analytics.Range{End: time.Now().UTC()}
		start, err := analytics.ParseTime(startRaw)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		r.Start = start
		if endRaw != "" {
			if r.End, err = analytics.ParseTime(endRaw); err != nil {
				return fmt.Errorf("--end: %w", err)
			}
		}

		g := fixtures.NewGenerator(seed, time.Now())
		for _, csp := range domain.KnownCSPs {
			hbs, err := g.Heartbeats(csp, r)
			if err != nil {
				return err
			}
			if err := write(fileName(csp, "heartbeat_ticket_data.csv"), hbs); err != nil {
				return err
			}
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Copy ticket CSV files into Postgres",
	Long: `Copy ticket CSV files into a Postgres table using the POSTGRES_DSN from
the environment. Use --table heartbeat_tickets for heartbeat files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _ := cmd.Flags().GetString("table")
		migrate, _ := cmd.Flags().GetBool("migrate")
		if table != repository.TicketsTable && table != repository.HeartbeatTable {
			return fmt.Errorf("--table must be %s or %s", repository.TicketsTable, repository.HeartbeatTable)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for import")
		}
		ctx := cmd.Context()
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return err
		}
		defer pg.Close()
		if migrate {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				return err
			}
		}

		repo := repository.NewTicketRepository(pg.PoolHandle())
		for _, path := range args {
			if err := importFile(ctx, repo, table, path); err != nil {
				return err
			}
		}
		return nil
	},
}

func importFile(ctx context.Context, repo repository.TicketRepository, table, path string) error {
	rc, err := dataset.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	tickets, stats, err := dataset.ParseTickets(rc)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	copied, err := repo.CopyTickets(ctx, table, tickets)
	if err != nil {
		return fmt.Errorf("copy %s: %w", path, err)
	}
	logger.Info("imported tickets",
		zap.String("path", path),
		zap.String("table", table),
		zap.Int64("rows", copied),
		zap.Int("skipped", stats.Skipped))
	return nil
}

func fileName(csp domain.CSP, base string) string {
	switch csp {
	case domain.CSPAWS:
		return "aws_" + base
	case domain.CSPGCP:
		return "gcp_" + base
	}
	return base
}

func write(name string, tickets []domain.Ticket) error {
	switch compress {
	case "":
	case "gz":
		name += dataset.SuffixGzip
	case "zst":
		name += dataset.SuffixZstd
	default:
		return fmt.Errorf("--compress must be gz or zst, got %q", compress)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(outDir, name)
	if err := fixtures.Write(path, tickets); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("wrote dataset", zap.String("path", path), zap.Int("rows", len(tickets)))
	return nil
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "random seed; equal seeds give equal output")
	rootCmd.PersistentFlags().StringVar(&outDir, "dir", ".", "output directory")
	rootCmd.PersistentFlags().StringVar(&compress, "compress", "", "compress output files: gz or zst")

	ticketsCmd.Flags().Int("count", 5000, "number of tickets to generate")
	ticketsCmd.Flags().Bool("split", false, "write one file per provider")

	heartbeatCmd.Flags().String("start", "2024-06-01", "first check timestamp")
	heartbeatCmd.Flags().String("end", "", "last check timestamp (default now)")

	importCmd.Flags().String("table", repository.TicketsTable, "destination table")
	importCmd.Flags().Bool("migrate", false, "apply SQL migrations before importing")

	rootCmd.AddCommand(ticketsCmd, heartbeatCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

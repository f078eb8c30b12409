// main.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localnerve/portfolio-leads/internal/config"
	"github.com/localnerve/portfolio-leads/internal/database"
	"github.com/localnerve/portfolio-leads/internal/logging"
	"github.com/localnerve/portfolio-leads/internal/repository"
	"github.com/localnerve/portfolio-leads/internal/services"
)

var logLevel string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "leadctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadctl",
		Short: "Portfolio leads maintenance CLI",
		Long: `leadctl runs maintenance operations against the configured store: rebuilding the
counter ledger, finishing interrupted conversions, seeding categories and checking health.
Configuration is read from the environment exactly like the server.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL")
	cmd.AddCommand(
		newReconcileCmd(),
		newRepairCmd(),
		newSeedCmd(),
		newStatsCmd(),
		newHealthCmd(),
	)
	return cmd
}

// env is what every command runs against
type env struct {
	cfg    *config.Config
	store  repository.Store
	logger *zap.Logger
}

func withStore(ctx context.Context, fn func(e *env) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger, err := logging.New(level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := database.OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	return fn(&env{cfg: cfg, store: store, logger: logger})
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Overwrite totalForms and totalClients with direct counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(e *env) error {
				result, err := services.NewLedgerService(e.store, e.logger).Reconcile(ctx)
				if err != nil {
					return err
				}
				return printJSON(result)
			})
		},
	}
}

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair-conversions",
		Short: "Mark converted every submission whose client exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(e *env) error {
				repaired, err := services.NewClientService(e.store, e.logger).RepairConversions(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("repaired %d submission(s)\n", repaired)
				return nil
			})
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-categories",
		Short: "Insert any missing default categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(e *env) error {
				categories := services.NewCategoryService(e.store, e.logger)
				if _, err := categories.SeedDefaults(ctx); err != nil {
					return err
				}
				list, err := categories.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(list)
			})
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the counter ledger next to direct counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(e *env) error {
				stats, err := services.NewLedgerService(e.store, e.logger).Dashboard(ctx)
				if err != nil {
					return err
				}
				return printJSON(stats)
			})
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the store and configured dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(e *env) error {
				result := services.HealthCheck(ctx, e.cfg, e.store, e.logger)
				if err := printJSON(result); err != nil {
					return err
				}
				if result.Status != "healthy" {
					return fmt.Errorf("unhealthy: %s", result.ErrorMessage)
				}
				return nil
			})
		},
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dating-admin/internal/auth"
	"dating-admin/internal/config"
	"dating-admin/internal/database"
	"dating-admin/internal/logutils"
	"dating-admin/internal/seed"
	"dating-admin/pkg/models"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type seedOptions struct {
	users         int
	seed          int64
	reset         bool
	adminEmail    string
	adminPassword string
	adminName     string
}

func main() {
	if err := godotenv.Load(); err != nil {
		logutils.Log.Debugf("No .env file loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "generator",
		Short:         "Development data tooling for the dating admin database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(seedCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		logutils.Log.WithError(err).Error("Generator failed")
		stop()
		os.Exit(1)
	}
}

func seedCmd() *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with deterministic mock data",
		Long: `Fill the database with deterministic mock data: members, matches, blind dates,
reports, safety reports and notifications carrying legacy payload shapes.

The same --seed always produces the same records.

Examples:
  generator seed --users 200
  generator seed --users 50 --seed 7 --reset
  generator seed --admin-email ops@example.com --admin-password changeme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.users, "users", 100, "number of members to generate")
	f.Int64Var(&opts.seed, "seed", 1, "random seed")
	f.BoolVar(&opts.reset, "reset", false, "delete existing records first (operator accounts are kept)")
	f.StringVar(&opts.adminEmail, "admin-email", "", "create or update this operator account")
	f.StringVar(&opts.adminPassword, "admin-password", "", "password for --admin-email")
	f.StringVar(&opts.adminName, "admin-name", "Administrator", "display name for --admin-email")
	cmd.MarkFlagsRequiredTogether("admin-email", "admin-password")
	return cmd
}

func runSeed(ctx context.Context, opts seedOptions) error {
	if opts.users < 0 {
		return fmt.Errorf("--users must not be negative, got %d", opts.users)
	}

	cfg := config.Load()
	logutils.SetLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if opts.reset {
		if err := seed.Reset(ctx, db.DB); err != nil {
			return err
		}
		logutils.Log.Info("Seed: existing records deleted")
	}

	start := time.Now()
	ds := seed.Build(seed.Options{Users: opts.users, Seed: opts.seed})
	if err := seed.Write(ctx, db.DB, ds); err != nil {
		return err
	}

	if opts.adminEmail != "" {
		hash, err := auth.HashPassword(opts.adminPassword)
		if err != nil {
			return err
		}
		admin := &models.Admin{
			Email:        opts.adminEmail,
			Name:         opts.adminName,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		if err := auth.NewAdminRepository(db.DB).Upsert(ctx, admin); err != nil {
			return fmt.Errorf("failed to upsert admin %s: %w", opts.adminEmail, err)
		}
		logutils.Log.Infof("Seed: operator account %s ready", admin.Email)
	}

	logutils.Log.WithFields(logutils.Fields{
		"users":          len(ds.Users),
		"matches":        len(ds.Matches),
		"blindates":      len(ds.Blindates),
		"reports":        len(ds.Reports),
		"safety_reports": len(ds.SafetyReports),
		"notifications":  len(ds.Notifications),
		"seed":           opts.seed,
		"duration":       time.Since(start).Round(time.Millisecond).String(),
	}).Info("Seed completed")
	return nil
}

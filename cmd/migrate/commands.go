package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/portfolio/internal/config"
	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/domain/catalog"
	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/sqlite"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Portfolio catalog migration and maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log skipped and imported records")

	logger := func(cmd *cobra.Command) *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(
		newJSONToDBCmd(logger),
		newDBToJSONCmd(logger),
		newResetStatsCmd(logger),
		newHashPasswordCmd(),
	)
	return root
}

func newJSONToDBCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var file, dbPath string

	cmd := &cobra.Command{
		Use:   "json-to-db",
		Short: "Import projects from the JSON document into the content database",
		Long: `Imports every project of the document into the projects table.
Projects whose slug already exists are skipped, so re-running is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			file = flagOr(cmd, "file", file, cfg.Catalog.ProjectsFile)
			dbPath = flagOr(cmd, "db", dbPath, cfg.DB.ContentPath)

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open project document: %w", err)
			}
			defer f.Close()

			db, err := openContent(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			migrator := catalog.NewMigrator(sqlite.NewProjectRepository(db), logger(cmd))
			result, err := migrator.JSONToDB(cmd.Context(), f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d projects (%d skipped) into %s\n", result.Inserted, result.Skipped, dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "project document to read (default catalog.projects_file)")
	cmd.Flags().StringVar(&dbPath, "db", "", "content database path (default db.content_path)")
	return cmd
}

func newDBToJSONCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var file, dbPath string

	cmd := &cobra.Command{
		Use:   "db-to-json",
		Short: "Export visible projects from the content database to the JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			file = flagOr(cmd, "file", file, cfg.Catalog.ProjectsFile)
			dbPath = flagOr(cmd, "db", dbPath, cfg.DB.ContentPath)

			db, err := openContent(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := ensureDir(file); err != nil {
				return err
			}
			out, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("create project document: %w", err)
			}

			migrator := catalog.NewMigrator(sqlite.NewProjectRepository(db), logger(cmd))
			n, err := migrator.DBToJSON(cmd.Context(), out)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d projects to %s\n", n, file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "project document to write (default catalog.projects_file)")
	cmd.Flags().StringVar(&dbPath, "db", "", "content database path (default db.content_path)")
	return cmd
}

func newResetStatsCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "reset-stats",
		Short: "Zero views and likes and forget every client cooldown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			dbPath = flagOr(cmd, "db", dbPath, cfg.DB.StatsPath)

			if err := ensureDir(dbPath); err != nil {
				return err
			}
			db, err := sqlite.OpenStats(dbPath)
			if err != nil {
				return fmt.Errorf("open stats database: %w", err)
			}
			defer db.Close()

			policies := counter.Policies{
				counter.KindLike: cfg.Limits.LikeCooldown,
				counter.KindView: cfg.Limits.ViewCooldown,
			}
			svc := counter.NewService(sqlite.NewCounterRepository(db), policies, logger(cmd))
			if err := svc.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stats reset in %s\n", dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "stats database path (default db.stats_path)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for the admin password setting",
		Long: `Prints a bcrypt hash for admin.password_hash. The password is taken
from the argument, or read as the first line of stdin when omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := admin.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// flagOr returns the flag value when it was set on the command line and the
// configured value otherwise, so the tool and the server share store paths.
func flagOr(cmd *cobra.Command, name, value, configured string) string {
	if cmd.Flags().Changed(name) && value != "" {
		return value
	}
	return configured
}

func openContent(path string) (*sqlite.DB, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	db, err := sqlite.OpenContent(path)
	if err != nil {
		return nil, fmt.Errorf("open content database: %w", err)
	}
	return db, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

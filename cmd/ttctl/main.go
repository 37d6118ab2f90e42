package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"timetracker/pkg/auth"
	"timetracker/pkg/config"
	"timetracker/pkg/dashboard"
	"timetracker/pkg/database"
	"timetracker/pkg/timeentry"
	"timetracker/process/importer"
	"timetracker/process/report"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ttctl",
		Short: "Operator tool for the time tracker",
		Long: `ttctl works directly against the time tracker database named by DATABASE_URL
(or DB_DSN). A .env file in the working directory is loaded first.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = config.LoadDotEnv()
		},
	}
	root.AddCommand(newMigrateCmd(), newReportCmd(), newMonthCmd(), newImportCmd(), newTokenCmd())
	return root
}

func openDB() (*gorm.DB, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, cfg, err
	}
	return db, cfg, nil
}

func newService(db *gorm.DB, cfg config.Config) *timeentry.Service {
	if len(cfg.Projects) > 0 {
		return timeentry.NewService(timeentry.NewGormStore(db), timeentry.WithProjects(cfg.Projects))
	}
	return timeentry.NewService(timeentry.NewGormStore(db))
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the time_entries table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print one dashboard page of entries grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			entries, err := newService(db, cfg).List(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), dashboard.Build(entries, page))
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page of date groups to print")
	return cmd
}

func printReport(out io.Writer, v dashboard.View) {
	if v.EntryCount == 0 {
		fmt.Fprintln(out, "No time entries yet.")
		return
	}
	for _, g := range v.Groups {
		fmt.Fprintf(out, "%s  (Total: %s)\n", g.Label, dashboard.HoursLabel(g.TotalHours))
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, e := range g.Entries {
			fmt.Fprintf(tw, "  %s\t%d\t%s\n", e.Project, e.Hours, strings.ReplaceAll(e.Description, "\n", " "))
		}
		tw.Flush()
	}
	fmt.Fprintf(out, "Grand Total: %s\n", dashboard.HoursLabel(v.GrandTotal))
	if v.Paginated() {
		fmt.Fprintf(out, "Showing page %d of %d\n", v.Page, v.TotalPages)
	}
}

func newMonthCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "month <YYYY-MM>",
		Short: "Print hours per project for one calendar month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			rep, err := report.Build(cmd.Context(), db, args[0], list)
			if err != nil {
				return err
			}
			report.Print(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list matching rows")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import entries from a CSV file (date,project,hours,description)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			res, err := importer.ImportFile(cmd.Context(), newService(db, cfg), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range res.Failed {
				fmt.Fprintf(out, "line %d: %s\n", f.Line, f.Message)
			}
			fmt.Fprintf(out, "%d created, %d rejected\n", len(res.Created), len(res.Failed))
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		username string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API (requires JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := auth.IssueToken([]byte(secret), username, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username claim for the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

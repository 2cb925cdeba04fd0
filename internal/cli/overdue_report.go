package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/config"
	"github.com/mrlokans/booklending/internal/database"
	"github.com/mrlokans/booklending/internal/database/notifications"
	"github.com/mrlokans/booklending/internal/lending"
	"github.com/mrlokans/booklending/internal/notify"
)

type overdueReportOptions struct {
	databasePath string
	notify       bool
}

func newOverdueReportCommand() *cobra.Command {
	opts := &overdueReportOptions{}

	cmd := &cobra.Command{
		Use:   "overdue-report",
		Short: "Print loans past their due date with accrued fines",
		Example: `  booklending overdue-report
  booklending overdue-report --notify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverdueReport(cmd, config.NewConfig(), opts, time.Now)
		},
	}

	cmd.Flags().StringVar(&opts.databasePath, "db", "", "SQLite database file (overrides DATABASE_PATH)")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "Also send an overdue reminder to each borrower's inbox")
	return cmd
}

func runOverdueReport(cmd *cobra.Command, cfg *config.Config, opts *overdueReportOptions, now func() time.Time) error {
	if opts.databasePath != "" {
		cfg.Database.Driver = config.DatabaseDriverSQLite
		cfg.Database.Path = opts.databasePath
	}

	db, err := database.NewDatabase(cfg.Database, zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	options := []lending.Option{lending.WithClock(now)}
	if opts.notify {
		options = append(options, lending.WithNotifier(notify.NewInbox(notifications.NewRepository(db.DB))))
	}
	engine := lending.NewEngine(database.NewStore(db.DB, cfg.Borrowing.DefaultBorrowLimit), lending.Settings{
		LoanPeriod: cfg.Borrowing.LoanPeriod(),
		FinePerDay: cfg.Borrowing.FinePerDay,
	}, options...)

	overdue, err := engine.ListOverdue(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list overdue loans: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(overdue) == 0 {
		fmt.Fprintln(out, "No overdue loans.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BORROWING\tUSER\tBOOK\tDUE\tDAYS\tFINE")
	var total int64
	for _, v := range overdue {
		title := fmt.Sprintf("#%d", v.BookID)
		if v.Book != nil {
			title = v.Book.Title
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%d\n",
			v.ID, v.UserID, title, v.DueDate.Format("2006-01-02"), v.OverdueDays, v.AccruedFine)
		total += v.AccruedFine
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d overdue loan(s), %d VND accrued.\n", len(overdue), total)

	if opts.notify {
		sent, err := engine.NotifyOverdue(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to send reminders: %w", err)
		}
		fmt.Fprintf(out, "Sent %d reminder(s).\n", sent)
	}
	return nil
}

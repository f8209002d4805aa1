package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of runs to show"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.History.Disabled {
		return taskerrors.New(taskerrors.CategoryHistory, taskerrors.SeverityError,
			"run history is disabled in the configuration")
	}

	store, err := history.Open(cfg.AbsPath(cfg.History.Path))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tTASK\tPROFILE\tOUTCOME\tDURATION\tDETAIL")
	for _, r := range runs {
		profile := r.Profile
		if profile == "" {
			profile = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Task, profile, r.Outcome, r.Duration.Round(time.Millisecond), r.Detail)
	}
	return w.Flush()
}

package integrity

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the
// duration until the next fire time.
func nextCronDuration(expr string) (time.Duration, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0, fmt.Errorf("integrity: parse schedule %q: %w", expr, err)
	}
	d := time.Until(sched.Next(time.Now()))
	if d < 0 {
		d = 0
	}
	return d, nil
}

// SweepOpts configures the periodic integrity sweep.
type SweepOpts struct {
	Schedule string // 5-field cron expression
	Repair   bool   // renumber broken containers instead of only reporting
	Out      io.Writer
}

// RunSweep runs the density check on the given cron schedule until ctx is
// cancelled. Check errors are logged, not fatal: a transient storage error
// should not kill the daemon.
func RunSweep(ctx context.Context, db *gorm.DB, opts SweepOpts) error {
	if db == nil {
		return fmt.Errorf("integrity: db is required")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if _, err := nextCronDuration(opts.Schedule); err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "Integrity sweep scheduled (%s, repair=%v)\n", opts.Schedule, opts.Repair)

	for {
		d, err := nextCronDuration(opts.Schedule)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(d):
		}

		issues, err := Check(db)
		if err != nil {
			log.Printf("integrity sweep error: %v", err)
			continue
		}
		if len(issues) == 0 {
			continue
		}

		for _, issue := range issues {
			fmt.Fprintf(opts.Out, "Integrity: %s\n", issue)
		}
		if opts.Repair {
			n, err := Repair(db)
			if err != nil {
				log.Printf("integrity repair error: %v", err)
				continue
			}
			fmt.Fprintf(opts.Out, "Integrity: repaired %d containers\n", n)
		}
	}
}

// ABOUTME: Run mode and target date resolved from command-line arguments
// ABOUTME: A bad date argument never aborts a run; it falls back to today with a warning

package aggregate

import (
	"errors"
	"fmt"
	"time"

	"github.com/harper/secdigest/internal/timeutil"
)

// Mode selects which adapters a run uses.
type Mode string

const (
	// ModeDaily pulls the dated digests, plus the latest feeds when the target is today.
	ModeDaily Mode = "daily"
	// ModeIssue reads only the issue file.
	ModeIssue Mode = "issue"
)

// IssueArg is the argument that selects ModeIssue.
const IssueArg = "issue"

// ErrInvalidDate marks an argument that is neither "issue" nor YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date argument")

// RunContext is what one run targets.
type RunContext struct {
	Mode Mode
	// Date is the partition new articles are stamped with.
	Date string
	// Today is the local date when the run started.
	Today string
}

// IsToday reports whether the run targets the current date.
func (rc RunContext) IsToday() bool {
	return rc.Date == rc.Today
}

// ParseArgs resolves the run context. Only the first argument is considered.
// An unparseable date yields a daily run for today together with an error
// wrapping ErrInvalidDate that callers should log and otherwise ignore.
func ParseArgs(args []string, now time.Time) (RunContext, error) {
	today := timeutil.FormatDate(now)
	rc := RunContext{Mode: ModeDaily, Date: today, Today: today}

	if len(args) == 0 {
		return rc, nil
	}

	arg := args[0]
	if arg == IssueArg {
		rc.Mode = ModeIssue
		return rc, nil
	}
	if !timeutil.IsDate(arg) {
		return rc, fmt.Errorf("%w: %q, use YYYY-MM-DD; continuing with %s", ErrInvalidDate, arg, today)
	}
	rc.Date = arg
	return rc, nil
}

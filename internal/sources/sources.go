// ABOUTME: Source adapter contract and run context shared by every upstream kind
// ABOUTME: Adapters never return errors; a failed upstream yields no candidates

package sources

import (
	"context"

	"github.com/harper/secdigest/internal/fetch"
	"github.com/harper/secdigest/internal/models"
)

// Request is what an adapter knows about the current run.
type Request struct {
	// Date is the target day as YYYY-MM-DD. Date-agnostic adapters ignore it.
	Date string
}

// Source produces candidate articles from one upstream.
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) []models.Article
}

// Set groups adapters by when the driver runs them.
type Set struct {
	// Dated run for every daily-mode run with the target date.
	Dated []Source
	// Latest only make sense for today's pull.
	Latest []Source
	// Issue run alone in issue mode.
	Issue []Source
}

// Getter is the transport the HTTP-backed adapters use.
type Getter = fetch.Getter

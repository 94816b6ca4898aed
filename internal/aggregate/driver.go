// ABOUTME: Aggregation driver: load the archive, run adapters, dedupe, persist, render
// ABOUTME: Upstream failures are absorbed by adapters; storage and render errors end the run

package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/harper/secdigest/internal/models"
	"github.com/harper/secdigest/internal/render"
	"github.com/harper/secdigest/internal/sources"
)

// DefaultRecentDays is the width of the front-page window.
const DefaultRecentDays = 7

// ArchiveStore is the persistence the driver needs.
type ArchiveStore interface {
	LoadAll() ([]models.Article, error)
	AppendNew(candidates []models.Article, date string) (int, error)
}

// Renderer publishes one view.
type Renderer interface {
	Render(v render.View) error
}

// Driver runs one aggregation pass.
type Driver struct {
	Store      ArchiveStore
	Sources    sources.Set
	Renderer   Renderer
	RecentDays int
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Report summarizes a run.
type Report struct {
	RunID   string
	Mode    Mode
	Date    string
	Fetched int
	Added   int
	Total   int
	Recent  int
	// Rendered is false when the archive was empty and no pages were written.
	Rendered bool
}

func (d *Driver) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

func (d *Driver) recentDays() int {
	if d.RecentDays > 0 {
		return d.RecentDays
	}
	return DefaultRecentDays
}

// Adapters returns the sources a run context calls, in call order.
func (d *Driver) Adapters(rc RunContext) []sources.Source {
	if rc.Mode == ModeIssue {
		return d.Sources.Issue
	}
	adapters := append([]sources.Source{}, d.Sources.Dated...)
	if rc.IsToday() {
		adapters = append(adapters, d.Sources.Latest...)
	}
	return adapters
}

// Run executes one pass for rc.
func (d *Driver) Run(ctx context.Context, rc RunContext) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Mode: rc.Mode, Date: rc.Date}
	logger := log.WithFields(log.Fields{"run": report.RunID, "mode": rc.Mode, "date": rc.Date})

	all, err := d.Store.LoadAll()
	if err != nil {
		return report, fmt.Errorf("load archive: %w", err)
	}
	known := NewURLSet(all)
	logger.WithField("known", known.Len()).Info("loaded archive")

	var candidates []models.Article
	for _, src := range d.Adapters(rc) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		got := src.Fetch(ctx, sources.Request{Date: rc.Date})
		logger.WithFields(log.Fields{"source": src.Name(), "candidates": len(got)}).Debug("adapter finished")
		candidates = append(candidates, got...)
	}
	report.Fetched = len(candidates)

	fresh := Stamp(Dedupe(candidates, known), rc.Date)
	if len(fresh) > 0 {
		added, err := d.Store.AppendNew(fresh, rc.Date)
		if err != nil {
			return report, fmt.Errorf("save new articles: %w", err)
		}
		report.Added = added
		all = append(all, fresh...)
		logger.WithField("added", added).Info("archived new articles")
	} else {
		logger.Info("no new articles")
	}
	report.Total = len(all)

	if len(all) == 0 {
		logger.Warn("archive is empty, skipping page generation")
		return report, nil
	}

	now := d.now()
	days := d.recentDays()
	recent := RecentView(all, now, days)
	report.Recent = len(recent)

	if err := d.Renderer.Render(render.RecentView(recent, days, now)); err != nil {
		return report, fmt.Errorf("render recent page: %w", err)
	}
	if err := d.Renderer.Render(render.ArchiveView(all, now)); err != nil {
		return report, fmt.Errorf("render archive page: %w", err)
	}
	report.Rendered = true

	logger.WithFields(log.Fields{"total": report.Total, "recent": report.Recent}).Info("run complete")
	return report, nil
}

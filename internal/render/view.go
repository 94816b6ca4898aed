// ABOUTME: Page views over the archive and the date grouping every renderer shares
// ABOUTME: Groups run newest first with each day ordered by source

package render

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/harper/secdigest/internal/models"
	"github.com/harper/secdigest/internal/timeutil"
)

// Kind names a page.
type Kind string

const (
	KindRecent  Kind = "recent"
	KindArchive Kind = "archive"
)

// FileName is the document a page kind is written to.
func (k Kind) FileName() string {
	if k == KindArchive {
		return "archive.html"
	}
	return "index.html"
}

// Nav links one page to the other.
type Nav struct {
	Href string
	Text string
}

// View is one page worth of articles.
type View struct {
	Kind        Kind
	Title       string
	Articles    []models.Article
	Nav         Nav
	GeneratedAt time.Time
	// Today is the YYYY-MM-DD date highlighted in the page.
	Today string
}

// RecentView builds the front page over articles already cut to the window.
func RecentView(articles []models.Article, days int, now time.Time) View {
	return View{
		Kind:        KindRecent,
		Title:       fmt.Sprintf("每日安全文章聚合 (最近%d天)", days),
		Articles:    articles,
		Nav:         Nav{Href: KindArchive.FileName(), Text: "查看完整归档 →"},
		GeneratedAt: now,
		Today:       timeutil.FormatDate(now),
	}
}

// ArchiveView builds the full archive page.
func ArchiveView(articles []models.Article, now time.Time) View {
	return View{
		Kind:        KindArchive,
		Title:       "完整文章归档",
		Articles:    articles,
		Nav:         Nav{Href: KindRecent.FileName(), Text: "← 返回首页"},
		GeneratedAt: now,
		Today:       timeutil.FormatDate(now),
	}
}

// DayGroup is the articles added on one date.
type DayGroup struct {
	Date     string
	Articles []models.Article
	// Open marks the newest group, the only one expanded initially.
	Open    bool
	IsToday bool
}

// Group buckets articles by date added, newest first. Articles without a date
// land in a trailing models.UnknownDate group. Within a group articles are
// stably ordered by source.
func Group(articles []models.Article, today string) []DayGroup {
	byDay := lo.GroupBy(articles, func(a models.Article) string { return a.Day() })

	dates := lo.Keys(byDay)
	sort.Slice(dates, func(i, j int) bool {
		if dates[i] == models.UnknownDate || dates[j] == models.UnknownDate {
			return dates[j] == models.UnknownDate && dates[i] != models.UnknownDate
		}
		return dates[i] > dates[j]
	})

	groups := make([]DayGroup, 0, len(dates))
	for i, date := range dates {
		day := byDay[date]
		sort.SliceStable(day, func(a, b int) bool { return day[a].Source < day[b].Source })
		groups = append(groups, DayGroup{
			Date:     date,
			Articles: day,
			Open:     i == 0,
			IsToday:  date == today,
		})
	}
	return groups
}

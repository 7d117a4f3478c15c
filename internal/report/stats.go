// Package report renders the console output of the statistics and cleanup tools.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"repo-stats-admin/internal/lib"
	"repo-stats-admin/internal/lib/console"
	"repo-stats-admin/internal/models"
	"repo-stats-admin/internal/storage/postgres"
)

const (
	timeLayout   = "2006-01-02 15:04:05"
	topUsers     = 10
	nameMaxRunes = 24
)

type StatsPrinter struct {
	w io.Writer
	p *console.Palette
}

func NewStatsPrinter(w io.Writer) *StatsPrinter {
	return &StatsPrinter{w: w, p: console.New(w)}
}

func (s *StatsPrinter) Banner() {
	fmt.Fprintln(s.w, s.p.Header.Render(s.p.StatusIcon("stats")+" User Repository Statistics Check"))
	fmt.Fprintln(s.w, s.p.Separator("=", 50))
}

func (s *StatsPrinter) Connected(dbName, address string) {
	fmt.Fprintf(s.w, "\n%s Database connection successful!\n", s.p.StatusIcon("success"))
	fmt.Fprintf(s.w, "%s Connected to: %s at %s\n", s.p.StatusIcon("connect"), dbName, address)
}

func (s *StatsPrinter) Querying() {
	fmt.Fprintf(s.w, "\n%s Executing full user stats query:\n", s.p.StatusIcon("search"))
}

// Print writes the top users table, the summary and the data-quality counts.
// An empty report prints only the no-results line.
func (s *StatsPrinter) Print(r *models.StatsReport) {
	if len(r.Users) == 0 {
		fmt.Fprintf(s.w, "\n%s No results found\n", s.p.StatusIcon("empty"))
		return
	}

	fmt.Fprintf(s.w, "\n%s Results (Top %d):\n", s.p.StatusIcon("results"), topUsers)
	fmt.Fprintln(s.w, s.topTable(r.Users))

	sum := r.Summary
	fmt.Fprintf(s.w, "\n%s %s\n", s.p.StatusIcon("stats"), s.p.Bold.Render("Complete Statistics:"))
	fmt.Fprintf(s.w, "Total users returned by query: %d\n", sum.UsersReturned)
	fmt.Fprintf(s.w, "Users with repositories: %d\n", sum.UsersWithRepos)
	fmt.Fprintf(s.w, "Users without repositories: %d\n", sum.UsersWithoutRepos)
	fmt.Fprintf(s.w, "Total repositories: %d\n", sum.TotalRepos)
	fmt.Fprintf(s.w, "Total stars: %d\n", sum.TotalStars)
	if sum.HasUsersWithRepos {
		fmt.Fprintf(s.w, "Average repos per user (with repos): %.2f\n", sum.AvgReposPerUser)
		fmt.Fprintf(s.w, "Average stars per user (with repos): %.2f\n", sum.AvgStarsPerUser)
	}

	if c := r.Checks; c != nil {
		fmt.Fprintf(s.w, "\n%s %s\n", s.p.StatusIcon("search"), s.p.Bold.Render("Additional checks:"))
		fmt.Fprintf(s.w, "Total users in users table: %d\n", c.TotalUsers)
		fmt.Fprintf(s.w, "Total records in user_repositories table: %d\n", c.TotalRepoRecords)
		fmt.Fprintf(s.w, "Unique owners in user_repositories: %d\n", c.UniqueOwners)
		fmt.Fprintf(s.w, "Records with NULL user_id: %d\n", c.NullUserIDRecords)
	}

	fmt.Fprintf(s.w, "\n%s Check completed at: %s\n", s.p.StatusIcon("time"), r.GeneratedAt.Format(timeLayout))
}

func (s *StatsPrinter) topTable(users []*models.UserRepoStats) string {
	t := s.p.Table(3, 4).Headers("Login", "Name", "Type", "Repos", "Stars")
	for _, u := range users[:min(topUsers, len(users))] {
		t.Row(
			u.Login,
			console.Truncate(deref(u.Name), nameMaxRunes),
			deref(u.Type),
			strconv.FormatInt(u.TotalReposInDB, 10),
			strconv.FormatInt(u.TotalStars, 10),
		)
	}
	return t.Render()
}

func (s *StatsPrinter) Closed() {
	fmt.Fprintf(s.w, "%s Database connection closed.\n", s.p.StatusIcon("disconnect"))
}

// Failure prints the top-level diagnostic: database errors and everything else are told apart.
func (s *StatsPrinter) Failure(err error) {
	failure(s.w, s.p, err)
}

// MissingConfig explains which connection variables are absent.
func (s *StatsPrinter) MissingConfig(err error) {
	missingConfig(s.w, s.p, err)
}

func failure(w io.Writer, p *console.Palette, err error) {
	if lib.IsDatabaseError(err) || errors.Is(err, postgres.ErrConnect) {
		fmt.Fprintf(w, "%s Database error: %s\n", p.StatusIcon("error"), p.Error.Render(lib.DatabaseErrorMessage(err)))
		return
	}
	fmt.Fprintf(w, "%s Unexpected error: %s\n", p.StatusIcon("error"), p.Error.Render(err.Error()))
}

func missingConfig(w io.Writer, p *console.Palette, err error) {
	fmt.Fprintf(w, "%s Error: Missing database connection parameters\n", p.StatusIcon("error"))
	fmt.Fprintln(w, p.Muted.Render(err.Error()))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func stamp(t time.Time) string {
	return t.Format(timeLayout)
}

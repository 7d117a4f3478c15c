package report

import (
	"fmt"
	"io"
	"strings"

	"repo-stats-admin/internal/lib/console"
	"repo-stats-admin/internal/models"
	"repo-stats-admin/internal/service/cleaner"
)

type kindHeading struct {
	icon  string
	title string
}

var kindHeadings = map[models.ObjectKind]kindHeading{
	models.KindPolicies:  {"🔒", "RLS policies"},
	models.KindTriggers:  {"⚡", "triggers"},
	models.KindIndexes:   {"🗂️ ", "indexes"},
	models.KindViews:     {"👁️ ", "views"},
	models.KindTables:    {"🗃️ ", "tables"},
	models.KindFunctions: {"⚙️ ", "functions"},
	models.KindSequences: {"🔢", "sequences"},
	models.KindEnums:     {"🏷️ ", "enum types"},
}

// CleanupPrinter renders the cleaner's plan, progress and summary. It implements cleaner.Observer.
type CleanupPrinter struct {
	w io.Writer
	p *console.Palette
}

var _ cleaner.Observer = (*CleanupPrinter)(nil)

func NewCleanupPrinter(w io.Writer) *CleanupPrinter {
	return &CleanupPrinter{w: w, p: console.New(w)}
}

func (c *CleanupPrinter) Banner(kinds []models.ObjectKind, all bool) {
	fmt.Fprintln(c.w, c.p.Header.Render(c.p.StatusIcon("cleanup")+" Database Cleanup"))
	fmt.Fprintln(c.w, c.p.Separator("=", 50))
	if all {
		fmt.Fprintf(c.w, "%s Full database cleanup requested\n", c.p.StatusIcon("target"))
		return
	}
	fmt.Fprintf(c.w, "%s Partial cleanup requested: %s\n", c.p.StatusIcon("target"), cleaner.KindNames(kinds))
}

func (c *CleanupPrinter) Connecting(dbName, address, schema string) {
	fmt.Fprintf(c.w, "%s Connecting to database: %s at %s (schema %s)\n", c.p.StatusIcon("connect"), dbName, address, schema)
}

func (c *CleanupPrinter) Connected() {
	fmt.Fprintf(c.w, "\n%s Database connection successful!\n", c.p.StatusIcon("success"))
}

// InvalidKinds lists the accepted kind names after a selection parsed to nothing.
func (c *CleanupPrinter) InvalidKinds() {
	fmt.Fprintf(c.w, "%s Invalid cleanup types. Valid options: %s\n", c.p.StatusIcon("error"), cleaner.KindNames(cleaner.ValidKinds))
}

// Planned prints every discovered object grouped by kind, followed by the total.
func (c *CleanupPrinter) Planned(plan *cleaner.Plan) {
	fmt.Fprintf(c.w, "\n%s Objects to be deleted:\n", c.p.StatusIcon("plan"))

	if plan.Total() == 0 {
		fmt.Fprintf(c.w, "  %s No user-created objects found to delete.\n", c.p.StatusIcon("empty"))
	}

	for _, kind := range plan.Ordered() {
		objs := plan.Objects[kind]
		if len(objs) == 0 {
			continue
		}
		fmt.Fprintf(c.w, "\n  %s:\n", c.p.Bold.Render(strings.ToUpper(string(kind))))
		for _, obj := range objs {
			fmt.Fprintf(c.w, "    - %s\n", planLine(obj))
		}
	}

	fmt.Fprintf(c.w, "\n%s Total objects to delete: %d\n", c.p.StatusIcon("stats"), plan.Total())
}

func (c *CleanupPrinter) Cancelled() {
	fmt.Fprintln(c.w, "Operation cancelled.")
}

func (c *CleanupPrinter) Started(runID string) {
	fmt.Fprintf(c.w, "\n%s Starting cleanup process... %s\n", c.p.StatusIcon("start"), c.p.Muted.Render("(run "+runID+")"))
}

func (c *CleanupPrinter) KindStarted(kind models.ObjectKind, count int) {
	if count == 0 {
		return
	}
	h := kindHeadings[kind]
	fmt.Fprintf(c.w, "\n%s Dropping %s...\n", h.icon, h.title)
}

func (c *CleanupPrinter) Dropped(obj models.SchemaObject) {
	line := fmt.Sprintf("Dropped %s: %s", noun(obj), obj.Label())
	if obj.RelationScoped() {
		line += " on " + obj.Table
	}
	fmt.Fprintf(c.w, "   %s %s\n", c.p.StatusIcon("success"), line)
}

func (c *CleanupPrinter) DropFailed(obj models.SchemaObject, reason string) {
	fmt.Fprintf(c.w, "   %s Failed to drop %s %s: %s\n", c.p.StatusIcon("error"), noun(obj), obj.Label(), c.p.Error.Render(reason))
}

// Summary prints per-kind outcomes and the totals of a finished run.
func (c *CleanupPrinter) Summary(r *cleaner.Result) {
	fmt.Fprintf(c.w, "\n%s\n", c.p.Separator("=", 60))
	fmt.Fprintf(c.w, "%s %s\n", c.p.StatusIcon("target"), c.p.Header.Render("CLEANUP SUMMARY"))
	fmt.Fprintln(c.w, c.p.Separator("=", 60))

	for _, kind := range r.Kinds {
		kr := r.ByKind[kind]
		if len(kr.Deleted) > 0 {
			fmt.Fprintf(c.w, "\n%s Successfully deleted %s: %d\n", c.p.StatusIcon("success"), strings.ToUpper(string(kind)), len(kr.Deleted))
		}
		if len(kr.Failed) > 0 {
			fmt.Fprintf(c.w, "\n%s Failed to delete %s: %d\n", c.p.StatusIcon("error"), strings.ToUpper(string(kind)), len(kr.Failed))
			for _, f := range kr.Failed {
				fmt.Fprintf(c.w, "   - %s: %s\n", f.Object.Label(), f.Err)
			}
		}
	}

	fmt.Fprintf(c.w, "\n%s Total objects deleted: %d\n", c.p.StatusIcon("stats"), r.TotalDeleted())
	fmt.Fprintf(c.w, "%s Total failures: %d\n", c.p.StatusIcon("stats"), r.TotalFailed())
	fmt.Fprintf(c.w, "\n%s Cleanup completed at: %s\n", c.p.StatusIcon("time"), stamp(r.FinishedAt))

	if r.TotalDeleted() > 0 {
		fmt.Fprintf(c.w, "\n%s %s\n", c.p.StatusIcon("celebrate"), c.p.Success.Render("Database cleanup successful!"))
	}
}

func (c *CleanupPrinter) Closed() {
	fmt.Fprintf(c.w, "%s Database connection closed.\n", c.p.StatusIcon("disconnect"))
}

func (c *CleanupPrinter) Failure(err error) {
	failure(c.w, c.p, err)
}

func (c *CleanupPrinter) MissingConfig(err error) {
	missingConfig(c.w, c.p, err)
}

func planLine(obj models.SchemaObject) string {
	if obj.RelationScoped() {
		return fmt.Sprintf("%s (on %s)", obj.Label(), obj.Table)
	}
	return obj.Label()
}

func noun(obj models.SchemaObject) string {
	if obj.Kind == models.KindFunctions && obj.RoutineKind != "" {
		return strings.ToLower(obj.RoutineKind)
	}
	return obj.Kind.Singular()
}

// Package stats rolls task collections into per-project and portfolio-wide
// figures. Aggregate is a total, deterministic function of its inputs and
// the provided date; it performs no I/O and may be re-run at any time.
package stats

import (
	"sort"

	"tablero-cli/internal/model"
)

type ProjectStats struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`

	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`

	// CompletionPct is completed/total*100, 0 for an empty project.
	CompletionPct float64 `json:"completionPct"`

	Budget     float64 `json:"budget"`
	ActualCost float64 `json:"actualCost"`
	// Variance is budget minus actual cost; negative means over budget.
	Variance float64 `json:"variance"`
	// VariancePct is variance relative to budget (0 when no budget).
	VariancePct float64 `json:"variancePct"`
	// BudgetUsagePct is actual cost relative to budget (0 when no budget).
	BudgetUsagePct float64 `json:"budgetUsagePct"`

	// NextDeadline is the earliest due date among non-done tasks.
	NextDeadline *model.Date `json:"nextDeadline,omitempty"`
}

type AssigneeCount struct {
	Assignee string `json:"assignee"`
	Count    int    `json:"count"`
}

type MonthBucket struct {
	Month string `json:"month"` // Jan..Dec
	Count int    `json:"count"`
}

type PortfolioStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Pending    int `json:"pending"`
	Overdue    int `json:"overdue"`

	CompletionPct  float64 `json:"completionPct"`
	Budget         float64 `json:"budget"`
	ActualCost     float64 `json:"actualCost"`
	Variance       float64 `json:"variance"`
	VariancePct    float64 `json:"variancePct"`
	BudgetUsagePct float64 `json:"budgetUsagePct"`

	// UpcomingDeadlines counts non-done tasks due within the next 7 days
	// (today inclusive).
	UpcomingDeadlines int `json:"upcomingDeadlines"`

	// TopAssignees lists at most 5 assignees by task count, descending.
	// Ties keep first-encountered order.
	TopAssignees []AssigneeCount `json:"topAssignees"`

	// CompletedByMonth is a 12-bucket histogram of done tasks over the
	// current calendar year, keyed by due-date month. Done tasks without a
	// due date, or whose due date falls in another year, are excluded.
	CompletedByMonth []MonthBucket `json:"completedByMonth"`

	Year int `json:"year"`
}

type Summary struct {
	PerProject []ProjectStats `json:"perProject"`
	Portfolio  PortfolioStats `json:"portfolio"`
}

const upcomingWindowDays = 7

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Aggregate computes per-project and portfolio statistics for the given
// tasks. Projects supplies display names; tasks referencing an unknown
// project id still aggregate under that id with an empty name. PerProject is
// ordered by project name, then id, for stable output.
func Aggregate(tasks []model.Task, projects []model.Project, today model.Date) Summary {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	perProject := map[string]*ProjectStats{}
	var order []string
	projectFor := func(id string) *ProjectStats {
		if ps, ok := perProject[id]; ok {
			return ps
		}
		ps := &ProjectStats{ProjectID: id, ProjectName: names[id]}
		perProject[id] = ps
		order = append(order, id)
		return ps
	}

	portfolio := PortfolioStats{Year: today.Year}

	assigneeCounts := map[string]int{}
	var assigneeOrder []string
	byMonth := make([]int, 12)

	for i := range tasks {
		t := &tasks[i]
		ps := projectFor(t.ProjectID)

		overdue := t.Status != model.StatusDone && t.DueDate != nil && t.DueDate.Before(today)

		ps.Total++
		portfolio.Total++
		switch t.Status {
		case model.StatusDone:
			portfolio.Completed++
			ps.Completed++
		case model.StatusInProgress:
			portfolio.InProgress++
			ps.InProgress++
		default:
			portfolio.Pending++
		}
		if overdue {
			ps.Overdue++
			portfolio.Overdue++
		}

		if t.Budget != nil {
			ps.Budget += *t.Budget
			portfolio.Budget += *t.Budget
		}
		if t.ActualCost != nil {
			ps.ActualCost += *t.ActualCost
			portfolio.ActualCost += *t.ActualCost
		}

		if t.Status != model.StatusDone && t.DueDate != nil {
			if ps.NextDeadline == nil || t.DueDate.Before(*ps.NextDeadline) {
				due := *t.DueDate
				ps.NextDeadline = &due
			}
			if days := model.DaysBetween(today, *t.DueDate); days >= 0 && days <= upcomingWindowDays {
				portfolio.UpcomingDeadlines++
			}
		}

		if t.Assignee != "" {
			if _, seen := assigneeCounts[t.Assignee]; !seen {
				assigneeOrder = append(assigneeOrder, t.Assignee)
			}
			assigneeCounts[t.Assignee]++
		}

		if t.Status == model.StatusDone && t.DueDate != nil && t.DueDate.Year == today.Year {
			byMonth[int(t.DueDate.Month)-1]++
		}
	}

	out := Summary{Portfolio: portfolio}

	for _, id := range order {
		ps := perProject[id]
		finishProject(ps)
		out.PerProject = append(out.PerProject, *ps)
	}
	sort.SliceStable(out.PerProject, func(i, j int) bool {
		a, b := out.PerProject[i], out.PerProject[j]
		if a.ProjectName != b.ProjectName {
			return a.ProjectName < b.ProjectName
		}
		return a.ProjectID < b.ProjectID
	})

	if out.Portfolio.Total > 0 {
		out.Portfolio.CompletionPct = float64(out.Portfolio.Completed) / float64(out.Portfolio.Total) * 100
	}
	out.Portfolio.Variance = out.Portfolio.Budget - out.Portfolio.ActualCost
	if out.Portfolio.Budget > 0 {
		out.Portfolio.VariancePct = out.Portfolio.Variance / out.Portfolio.Budget * 100
		out.Portfolio.BudgetUsagePct = out.Portfolio.ActualCost / out.Portfolio.Budget * 100
	}

	out.Portfolio.TopAssignees = topAssignees(assigneeCounts, assigneeOrder, 5)

	out.Portfolio.CompletedByMonth = make([]MonthBucket, 12)
	for i, n := range byMonth {
		out.Portfolio.CompletedByMonth[i] = MonthBucket{Month: monthNames[i], Count: n}
	}

	return out
}

func finishProject(ps *ProjectStats) {
	if ps.Total > 0 {
		ps.CompletionPct = float64(ps.Completed) / float64(ps.Total) * 100
	}
	ps.Variance = ps.Budget - ps.ActualCost
	if ps.Budget > 0 {
		ps.VariancePct = ps.Variance / ps.Budget * 100
		ps.BudgetUsagePct = ps.ActualCost / ps.Budget * 100
	}
}

// topAssignees sorts descending by count; ties keep first-encountered order.
func topAssignees(counts map[string]int, order []string, limit int) []AssigneeCount {
	out := make([]AssigneeCount, 0, len(order))
	for _, name := range order {
		out = append(out, AssigneeCount{Assignee: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BudgetHealth classifies a variance percentage: clearly under budget,
// within the watch band, or over. The ±10 thresholds mirror the cost view.
type BudgetHealth string

const (
	BudgetUnder BudgetHealth = "under"
	BudgetWatch BudgetHealth = "watch"
	BudgetOver  BudgetHealth = "over"
)

func HealthFor(variancePct float64) BudgetHealth {
	switch {
	case variancePct > 10:
		return BudgetUnder
	case variancePct > -10:
		return BudgetWatch
	default:
		return BudgetOver
	}
}

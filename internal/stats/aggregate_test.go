package stats

import (
	"reflect"
	"testing"

	"tablero-cli/internal/model"
)

func date(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datep(s string) *model.Date {
	d := date(s)
	return &d
}

func fp(v float64) *float64 { return &v }

func TestAggregateEmpty(t *testing.T) {
	sum := Aggregate(nil, nil, date("2024-06-15"))
	if len(sum.PerProject) != 0 {
		t.Fatalf("PerProject = %v, want empty", sum.PerProject)
	}
	p := sum.Portfolio
	if p.Total != 0 || p.CompletionPct != 0 || p.Overdue != 0 {
		t.Fatalf("unexpected portfolio for empty input: %+v", p)
	}
	if len(p.CompletedByMonth) != 12 {
		t.Fatalf("histogram must always have 12 buckets, got %d", len(p.CompletedByMonth))
	}
}

func TestAggregateCounts(t *testing.T) {
	today := date("2024-06-15")
	projects := []model.Project{
		{ID: "proj-a", Name: "Launch"},
		{ID: "proj-b", Name: "Brand"},
	}
	tasks := []model.Task{
		{ProjectID: "proj-a", Status: model.StatusDone, DueDate: datep("2024-03-10")},
		{ProjectID: "proj-a", Status: model.StatusInProgress, DueDate: datep("2024-06-10")}, // overdue
		{ProjectID: "proj-a", Status: model.StatusPending, DueDate: datep("2024-06-20")},
		{ProjectID: "proj-b", Status: model.StatusPending}, // no due date: never overdue
	}

	sum := Aggregate(tasks, projects, today)

	if got := len(sum.PerProject); got != 2 {
		t.Fatalf("project count = %d", got)
	}
	// Ordered by project name: Brand before Launch.
	if sum.PerProject[0].ProjectName != "Brand" || sum.PerProject[1].ProjectName != "Launch" {
		t.Fatalf("unexpected project order: %q, %q", sum.PerProject[0].ProjectName, sum.PerProject[1].ProjectName)
	}

	launch := sum.PerProject[1]
	if launch.Total != 3 || launch.Completed != 1 || launch.InProgress != 1 || launch.Overdue != 1 {
		t.Fatalf("launch stats: %+v", launch)
	}
	if launch.CompletionPct != 100.0/3 {
		t.Fatalf("launch completion = %v", launch.CompletionPct)
	}
	if launch.NextDeadline == nil || launch.NextDeadline.String() != "2024-06-10" {
		t.Fatalf("launch next deadline = %v", launch.NextDeadline)
	}

	brand := sum.PerProject[0]
	if brand.NextDeadline != nil {
		t.Fatalf("brand has no dated tasks, next deadline = %v", brand.NextDeadline)
	}

	p := sum.Portfolio
	if p.Total != 4 || p.Completed != 1 || p.InProgress != 1 || p.Pending != 2 || p.Overdue != 1 {
		t.Fatalf("portfolio: %+v", p)
	}
}

func TestAggregatePartitionInvariant(t *testing.T) {
	today := date("2024-06-15")
	tasks := []model.Task{
		{ProjectID: "proj-a", Status: model.StatusDone},
		{ProjectID: "proj-b", Status: model.StatusPending},
		{ProjectID: "proj-b", Status: model.StatusInProgress},
		{ProjectID: "proj-c", Status: model.StatusDone},
		{ProjectID: "", Status: model.StatusPending}, // unknown project still counted
	}
	sum := Aggregate(tasks, nil, today)
	total := 0
	for _, ps := range sum.PerProject {
		total += ps.Total
	}
	if total != sum.Portfolio.Total {
		t.Fatalf("sum(perProject.Total) = %d, portfolio.Total = %d", total, sum.Portfolio.Total)
	}
}

func TestAggregateBudget(t *testing.T) {
	today := date("2024-06-15")
	projects := []model.Project{{ID: "proj-a", Name: "Launch"}}
	tasks := []model.Task{
		{ProjectID: "proj-a", Status: model.StatusDone, Budget: fp(1000), ActualCost: fp(500)},
		{ProjectID: "proj-a", Status: model.StatusPending, Budget: fp(2000), ActualCost: fp(2500)},
		{ProjectID: "proj-a", Status: model.StatusPending, Budget: fp(0), ActualCost: fp(0)},
	}
	sum := Aggregate(tasks, projects, today)
	ps := sum.PerProject[0]
	if ps.Budget != 3000 || ps.ActualCost != 3000 || ps.Variance != 0 {
		t.Fatalf("budget stats: budget=%v actual=%v variance=%v", ps.Budget, ps.ActualCost, ps.Variance)
	}
	if ps.BudgetUsagePct != 100 {
		t.Fatalf("usage = %v", ps.BudgetUsagePct)
	}
}

func TestAggregateTopAssignees(t *testing.T) {
	today := date("2024-06-15")
	mk := func(assignee string, n int) []model.Task {
		out := make([]model.Task, n)
		for i := range out {
			out[i] = model.Task{ProjectID: "proj-a", Status: model.StatusPending, Assignee: assignee}
		}
		return out
	}
	var tasks []model.Task
	tasks = append(tasks, mk("Ana", 2)...)
	tasks = append(tasks, mk("Bruno", 3)...)
	tasks = append(tasks, mk("Carla", 2)...) // ties with Ana; Ana seen first
	tasks = append(tasks, mk("Diego", 1)...)
	tasks = append(tasks, mk("Eva", 1)...)
	tasks = append(tasks, mk("Fran", 1)...)
	tasks = append(tasks, model.Task{ProjectID: "proj-a", Status: model.StatusPending}) // unassigned: excluded

	got := Aggregate(tasks, nil, today).Portfolio.TopAssignees
	want := []AssigneeCount{
		{"Bruno", 3},
		{"Ana", 2},
		{"Carla", 2},
		{"Diego", 1},
		{"Eva", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopAssignees = %v, want %v", got, want)
	}
}

func TestAggregateMonthlyHistogram(t *testing.T) {
	today := date("2024-06-15")
	tasks := []model.Task{
		{ProjectID: "p", Status: model.StatusDone, DueDate: datep("2024-01-10")},
		{ProjectID: "p", Status: model.StatusDone, DueDate: datep("2024-01-20")},
		{ProjectID: "p", Status: model.StatusDone, DueDate: datep("2024-11-05")},
		{ProjectID: "p", Status: model.StatusDone, DueDate: datep("2023-01-10")}, // other year: excluded
		{ProjectID: "p", Status: model.StatusDone},                               // no due date: excluded
		{ProjectID: "p", Status: model.StatusInProgress, DueDate: datep("2024-01-15")}, // not done: excluded
	}
	h := Aggregate(tasks, nil, today).Portfolio.CompletedByMonth
	if len(h) != 12 {
		t.Fatalf("bucket count = %d", len(h))
	}
	if h[0].Month != "Jan" || h[0].Count != 2 {
		t.Fatalf("Jan bucket = %+v", h[0])
	}
	if h[10].Month != "Nov" || h[10].Count != 1 {
		t.Fatalf("Nov bucket = %+v", h[10])
	}
	rest := 0
	for i, b := range h {
		if i != 0 && i != 10 {
			rest += b.Count
		}
	}
	if rest != 0 {
		t.Fatalf("unexpected counts outside Jan/Nov: %+v", h)
	}
}

func TestAggregateUpcomingDeadlines(t *testing.T) {
	today := date("2024-06-15")
	tasks := []model.Task{
		{ProjectID: "p", Status: model.StatusPending, DueDate: datep("2024-06-15")}, // today: counts
		{ProjectID: "p", Status: model.StatusPending, DueDate: datep("2024-06-22")}, // +7: counts
		{ProjectID: "p", Status: model.StatusPending, DueDate: datep("2024-06-23")}, // +8: out
		{ProjectID: "p", Status: model.StatusPending, DueDate: datep("2024-06-14")}, // past: out
		{ProjectID: "p", Status: model.StatusDone, DueDate: datep("2024-06-16")},    // done: out
	}
	if got := Aggregate(tasks, nil, today).Portfolio.UpcomingDeadlines; got != 2 {
		t.Fatalf("UpcomingDeadlines = %d, want 2", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	today := date("2024-06-15")
	tasks := []model.Task{
		{ProjectID: "proj-a", Status: model.StatusDone, Assignee: "Ana", DueDate: datep("2024-02-02"), Budget: fp(100), ActualCost: fp(80)},
		{ProjectID: "proj-b", Status: model.StatusInProgress, Assignee: "Bruno", DueDate: datep("2024-06-10")},
	}
	projects := []model.Project{{ID: "proj-a", Name: "A"}, {ID: "proj-b", Name: "B"}}
	a := Aggregate(tasks, projects, today)
	b := Aggregate(tasks, projects, today)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Aggregate is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestHealthFor(t *testing.T) {
	cases := []struct {
		pct  float64
		want BudgetHealth
	}{
		{25, BudgetUnder},
		{10.5, BudgetUnder},
		{10, BudgetWatch},
		{0, BudgetWatch},
		{-10, BudgetOver},
		{-40, BudgetOver},
	}
	for _, c := range cases {
		if got := HealthFor(c.pct); got != c.want {
			t.Fatalf("HealthFor(%v) = %v, want %v", c.pct, got, c.want)
		}
	}
}

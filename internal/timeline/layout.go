// Package timeline computes Gantt geometry: one shared date-to-offset
// coordinate system for an arbitrary set of tasks, plus per-task bar
// placement. Output is abstract layout units; renderers decide what a unit
// maps to (terminal cells, pixels).
package timeline

import (
	"tablero-cli/internal/progress"

	"tablero-cli/internal/model"
)

type Bar struct {
	TaskID string `json:"taskId"`
	Title  string `json:"title"`

	// OffsetDays is whole days from WindowStart to the bar's start.
	OffsetDays int `json:"offsetDays"`
	// DurationDays is inclusive of both endpoints, so a same-day task is 1.
	DurationDays int `json:"durationDays"`

	Progress float64        `json:"progress"`
	Color    progress.Color `json:"color"`
}

// SubTaskMarker is a fixed-width marker at the parent task's offset;
// subtasks carry no date range of their own.
type SubTaskMarker struct {
	TaskID      string  `json:"taskId"`
	SubTaskID   string  `json:"subTaskId"`
	Description string  `json:"description"`
	OffsetDays  int     `json:"offsetDays"`
	WidthUnits  float64 `json:"widthUnits"`
	Completed   bool    `json:"completed"`
}

type Chart struct {
	WindowStart model.Date `json:"windowStart"`
	WindowEnd   model.Date `json:"windowEnd"`
	TotalDays   int        `json:"totalDays"`
	// DayWidth is layout units per day, never below minDayWidth.
	DayWidth float64 `json:"dayWidth"`

	Bars        []Bar           `json:"bars"`
	SubTaskBars []SubTaskMarker `json:"subtaskBars"`
}

const (
	// defaultSpanDays replaces a degenerate (zero or negative) window so a
	// single-point or empty data set still renders a usable chart.
	defaultSpanDays = 30

	// chartWidthUnits is the nominal chart width the day width is derived
	// from; minDayWidth keeps long windows legible.
	chartWidthUnits = 800
	minDayWidth     = 20

	// A task without a due date is given a one-week bar.
	defaultBarDays = 7

	minMarkerUnits = 40
)

// Layout computes the shared window and per-task geometry for the given
// tasks. Tasks without a start date are pinned to the window start; tasks
// without a due date get a default one-week bar.
func Layout(tasks []model.Task, today model.Date) Chart {
	windowStart := today
	windowEnd := today
	for i := range tasks {
		t := &tasks[i]
		start := today
		if t.StartDate != nil {
			start = *t.StartDate
		}
		end := today
		if t.DueDate != nil {
			end = *t.DueDate
		}
		if i == 0 {
			windowStart, windowEnd = start, end
		}
		if start.Before(windowStart) {
			windowStart = start
		}
		if end.After(windowEnd) {
			windowEnd = end
		}
	}

	totalDays := model.DaysBetween(windowStart, windowEnd)
	if totalDays <= 0 {
		totalDays = defaultSpanDays
	}

	dayWidth := float64(chartWidthUnits) / float64(totalDays)
	if dayWidth < minDayWidth {
		dayWidth = minDayWidth
	}

	ch := Chart{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		TotalDays:   totalDays,
		DayWidth:    dayWidth,
	}

	markerWidth := 2 * dayWidth
	if markerWidth < minMarkerUnits {
		markerWidth = minMarkerUnits
	}

	for i := range tasks {
		t := &tasks[i]

		taskStart := windowStart
		if t.StartDate != nil {
			taskStart = *t.StartDate
		}
		taskEnd := taskStart.AddDays(defaultBarDays)
		if t.DueDate != nil {
			taskEnd = *t.DueDate
		}

		offset := model.DaysBetween(windowStart, taskStart)
		ch.Bars = append(ch.Bars, Bar{
			TaskID:       t.ID,
			Title:        t.Title,
			OffsetDays:   offset,
			DurationDays: model.DaysBetween(taskStart, taskEnd) + 1,
			Progress:     progress.Progress(t, today),
			Color:        progress.BarColor(t, today),
		})

		for _, st := range t.SubTasks {
			ch.SubTaskBars = append(ch.SubTaskBars, SubTaskMarker{
				TaskID:      t.ID,
				SubTaskID:   st.ID,
				Description: st.Description,
				OffsetDays:  offset,
				WidthUnits:  markerWidth,
				Completed:   st.Completed,
			})
		}
	}

	return ch
}

// GridDates returns one date per day column across the window, for drawing
// day gridlines and axis labels.
func (c Chart) GridDates() []model.Date {
	out := make([]model.Date, 0, c.TotalDays+1)
	for i := 0; i <= c.TotalDays; i++ {
		out = append(out, c.WindowStart.AddDays(i))
	}
	return out
}

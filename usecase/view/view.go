package view

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/repository"
)

// RecentLimit caps the dashboard's recent task list.
const RecentLimit = 8

type Dashboard struct {
	Total        int                   `json:"total"`
	ByStatus     map[domain.Status]int `json:"by_status"`
	HighPriority int                   `json:"high_priority"`
	Recent       []domain.Task         `json:"recent"`
}

type Column struct {
	Status domain.Status `json:"status"`
	Label  string        `json:"label"`
	Tasks  []domain.Task `json:"tasks"`
}

type Row struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Status      domain.Status   `json:"status"`
	StatusLabel string          `json:"status_label"`
	Priority    domain.Priority `json:"priority"`
	DueDate     string          `json:"due_date,omitempty"`
	Comments    int             `json:"comments"`
}

type Day struct {
	Day     int           `json:"day"`
	IsToday bool          `json:"is_today"`
	Tasks   []domain.Task `json:"tasks"`
}

type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

type Calendar struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	LeadingBlanks int        `json:"leading_blanks"`
	Days          []Day      `json:"days"`
	Prev          MonthRef   `json:"prev"`
	Next          MonthRef   `json:"next"`
}

// BuildDashboard partitions tasks by status. Every status has an entry, so
// the counts always sum to Total.
func BuildDashboard(tasks []domain.Task) Dashboard {
	dash := Dashboard{
		Total:    len(tasks),
		ByStatus: make(map[domain.Status]int, len(domain.Statuses)),
		Recent:   []domain.Task{},
	}
	for _, s := range domain.Statuses {
		dash.ByStatus[s] = 0
	}
	for _, t := range tasks {
		dash.ByStatus[t.Status]++
		if t.Priority == domain.PriorityHigh {
			dash.HighPriority++
		}
	}
	n := min(len(tasks), RecentLimit)
	dash.Recent = append(dash.Recent, tasks[:n]...)
	return dash
}

// BuildKanban groups tasks into one column per status in board order.
// Tasks with an unknown status are left out.
func BuildKanban(tasks []domain.Task) []Column {
	columns := make([]Column, len(domain.Statuses))
	index := make(map[domain.Status]int, len(domain.Statuses))
	for i, s := range domain.Statuses {
		columns[i] = Column{Status: s, Label: s.Label(), Tasks: []domain.Task{}}
		index[s] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			columns[i].Tasks = append(columns[i].Tasks, t)
		}
	}
	return columns
}

func BuildTable(tasks []domain.Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		row := Row{
			ID:          t.ID,
			Title:       t.Title,
			Status:      t.Status,
			StatusLabel: t.Status.Label(),
			Priority:    t.Priority,
			Comments:    len(t.Comments),
		}
		if t.DueDate != nil {
			row.DueDate = t.DueDate.Format(domain.DueDateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildCalendar lays out one month. LeadingBlanks is the weekday of the 1st
// with Sunday as 0. A task lands in the cell whose date equals its due date.
func BuildCalendar(tasks []domain.Task, year int, month time.Month, today time.Time) Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()
	daysIn := first.AddDate(0, 1, -1).Day()
	ty, tm, td := today.Date()

	cal := Calendar{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, 0, daysIn),
		Prev:          monthRef(first.AddDate(0, -1, 0)),
		Next:          monthRef(first.AddDate(0, 1, 0)),
	}
	for d := 1; d <= daysIn; d++ {
		day := Day{
			Day:     d,
			IsToday: ty == year && tm == month && td == d,
			Tasks:   []domain.Task{},
		}
		for i := range tasks {
			if tasks[i].DueOn(year, month, d) {
				day.Tasks = append(day.Tasks, tasks[i])
			}
		}
		cal.Days = append(cal.Days, day)
	}
	return cal
}

func monthRef(t time.Time) MonthRef {
	return MonthRef{Year: t.Year(), Month: t.Month()}
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

func (uc *UseCase) boardTasks(ctx context.Context, boardID string) ([]domain.Task, error) {
	if boardID == "" {
		return nil, domain.Invalid("board id is required")
	}
	return uc.tasks.List(ctx, repository.TaskFilter{BoardID: boardID})
}

func (uc *UseCase) Dashboard(ctx context.Context, boardID string) (Dashboard, error) {
	tasks, err := uc.boardTasks(ctx, boardID)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(tasks), nil
}

func (uc *UseCase) Kanban(ctx context.Context, boardID string) ([]Column, error) {
	tasks, err := uc.boardTasks(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return BuildKanban(tasks), nil
}

func (uc *UseCase) Table(ctx context.Context, boardID string) ([]Row, error) {
	tasks, err := uc.boardTasks(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return BuildTable(tasks), nil
}

// Calendar renders the given month; a zero year or month means the current one.
func (uc *UseCase) Calendar(ctx context.Context, boardID string, year int, month time.Month) (Calendar, error) {
	if month < 0 || month > 12 {
		return Calendar{}, domain.Invalid("month must be between 1 and 12")
	}
	tasks, err := uc.boardTasks(ctx, boardID)
	if err != nil {
		return Calendar{}, err
	}
	now := uc.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	return BuildCalendar(tasks, year, month, now), nil
}

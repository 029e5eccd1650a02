package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference instant for fixtures that need a stable clock.
var FixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

var testTaskCounter atomic.Int64

// Task options
type TaskOption func(*domain.Task)

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
	}
}

// NewTestTask builds a task with a fresh uuid. Successive tasks get
// CreatedAt one minute apart so ordering by time is deterministic.
func NewTestTask(content string, opts ...TaskOption) domain.Task {
	n := testTaskCounter.Add(1)
	t := domain.NewTask(uuid.New().String(), content, FixedNow.Add(time.Duration(n)*time.Minute))
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestBoard returns a board with the given number of tasks in each lane,
// named "<lane> <n>" so assertions can read positions back.
func NewTestBoard(todo, inProgress, done int) *domain.Board {
	b := domain.NewBoard()
	counts := []int{todo, inProgress, done}
	for li, n := range counts {
		for i := 0; i < n; i++ {
			content := fmt.Sprintf("%s %d", b.Lanes[li].ID, i+1)
			b.Lanes[li].Tasks = append(b.Lanes[li].Tasks, NewTestTask(content))
		}
	}
	return b
}

// LaneContents returns the task contents of lane id, in order.
func LaneContents(b *domain.Board, id domain.LaneID) []string {
	l := b.Lane(id)
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		out = append(out, t.Content)
	}
	return out
}

// NewTestDay builds a DailyStat for the date offset days before FixedNow.
func NewTestDay(offset, pomodoros, tasks, focusMin int) domain.DailyStat {
	return domain.DailyStat{
		Date:      FixedNow.AddDate(0, 0, -offset).Format(domain.DateLayout),
		Pomodoros: pomodoros,
		Tasks:     tasks,
		FocusTime: focusMin,
	}
}

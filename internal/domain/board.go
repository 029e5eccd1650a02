package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidLane is returned when a lane id does not name one of the three lanes.
var ErrInvalidLane = errors.New("invalid lane")

// LaneID identifies one of the fixed board lanes.
type LaneID string

const (
	LaneTodo       LaneID = "todo"
	LaneInProgress LaneID = "inProgress"
	LaneDone       LaneID = "done"
)

// LaneOrder is the fixed display order of the board.
var LaneOrder = []LaneID{LaneTodo, LaneInProgress, LaneDone}

// Title returns the display label of the lane.
func (id LaneID) Title() string {
	switch id {
	case LaneTodo:
		return "To Do"
	case LaneInProgress:
		return "In Progress"
	case LaneDone:
		return "Done"
	default:
		return string(id)
	}
}

// Valid reports whether id is one of the three lanes.
func (id LaneID) Valid() bool {
	return id == LaneTodo || id == LaneInProgress || id == LaneDone
}

// ParseLaneID accepts the stored ids and a few command-line spellings.
func ParseLaneID(s string) (LaneID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to-do", "to_do":
		return LaneTodo, nil
	case "inprogress", "in-progress", "in_progress", "doing", "wip":
		return LaneInProgress, nil
	case "done":
		return LaneDone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLane, s)
}

// Task is a single card on the board.
type Task struct {
	ID        string
	Content   string
	Completed bool
	CreatedAt time.Time
}

// NewTask builds an incomplete task.
func NewTask(id, content string, now time.Time) Task {
	return Task{ID: id, Content: content, CreatedAt: now}
}

// Lane is an ordered bucket of tasks. Order reflects user arrangement.
type Lane struct {
	ID    LaneID
	Title string
	Tasks []Task
}

// Board is the ordered set of exactly three lanes.
type Board struct {
	Lanes []Lane
}

// NewBoard returns the three empty lanes.
func NewBoard() *Board {
	b := &Board{Lanes: make([]Lane, 0, len(LaneOrder))}
	for _, id := range LaneOrder {
		b.Lanes = append(b.Lanes, Lane{ID: id, Title: id.Title(), Tasks: []Task{}})
	}
	return b
}

// Lane returns a pointer to the lane with the given id, or nil.
func (b *Board) Lane(id LaneID) *Lane {
	for i := range b.Lanes {
		if b.Lanes[i].ID == id {
			return &b.Lanes[i]
		}
	}
	return nil
}

// LaneIndex returns the position of lane id, or -1.
func (b *Board) LaneIndex(id LaneID) int {
	for i := range b.Lanes {
		if b.Lanes[i].ID == id {
			return i
		}
	}
	return -1
}

// Locate finds the lane and position of a task.
func (b *Board) Locate(taskID string) (laneIdx, taskIdx int, ok bool) {
	for li := range b.Lanes {
		for ti := range b.Lanes[li].Tasks {
			if b.Lanes[li].Tasks[ti].ID == taskID {
				return li, ti, true
			}
		}
	}
	return -1, -1, false
}

// Task returns a copy of the task with the given id.
func (b *Board) Task(taskID string) (Task, LaneID, bool) {
	li, ti, ok := b.Locate(taskID)
	if !ok {
		return Task{}, "", false
	}
	return b.Lanes[li].Tasks[ti], b.Lanes[li].ID, true
}

// TaskCount is the sum of all lane sizes.
func (b *Board) TaskCount() int {
	n := 0
	for _, l := range b.Lanes {
		n += len(l.Tasks)
	}
	return n
}

// Validate checks the fixed lane layout and task-id uniqueness. Blank task
// content is not structural; see DropBlankTasks.
func (b *Board) Validate() error {
	if len(b.Lanes) != len(LaneOrder) {
		return fmt.Errorf("board has %d lanes, want %d", len(b.Lanes), len(LaneOrder))
	}
	seen := make(map[string]bool)
	for i, l := range b.Lanes {
		if l.ID != LaneOrder[i] {
			return fmt.Errorf("lane %d is %q, want %q", i, l.ID, LaneOrder[i])
		}
		for _, t := range l.Tasks {
			if t.ID == "" {
				return fmt.Errorf("lane %q holds a task without id", l.ID)
			}
			if seen[t.ID] {
				return fmt.Errorf("task %s appears more than once", t.ID)
			}
			seen[t.ID] = true
		}
	}
	return nil
}

// DropBlankTasks removes tasks whose content is only whitespace and
// returns their ids in board order.
func (b *Board) DropBlankTasks() []string {
	var dropped []string
	for i := range b.Lanes {
		l := &b.Lanes[i]
		kept := l.Tasks[:0]
		for _, t := range l.Tasks {
			if strings.TrimSpace(t.Content) == "" {
				dropped = append(dropped, t.ID)
				continue
			}
			kept = append(kept, t)
		}
		l.Tasks = kept
	}
	return dropped
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := &Board{Lanes: make([]Lane, len(b.Lanes))}
	for i, l := range b.Lanes {
		tasks := make([]Task, len(l.Tasks))
		copy(tasks, l.Tasks)
		c.Lanes[i] = Lane{ID: l.ID, Title: l.Title, Tasks: tasks}
	}
	return c
}

// RemoveAt deletes the task at position idx and returns it.
func (l *Lane) RemoveAt(idx int) Task {
	t := l.Tasks[idx]
	l.Tasks = append(l.Tasks[:idx], l.Tasks[idx+1:]...)
	return t
}

// InsertAt places t at idx, clamped to [0, len].
func (l *Lane) InsertAt(idx int, t Task) int {
	idx = clampInt(idx, 0, len(l.Tasks))
	l.Tasks = append(l.Tasks, Task{})
	copy(l.Tasks[idx+1:], l.Tasks[idx:])
	l.Tasks[idx] = t
	return idx
}

// IndexOf returns the position of taskID within the lane, or -1.
func (l *Lane) IndexOf(taskID string) int {
	for i := range l.Tasks {
		if l.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

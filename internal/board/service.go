package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/repository"
	"github.com/alexanderramin/focusboard/internal/service"
	"github.com/google/uuid"
)

var (
	// ErrTaskNotFound is returned by Find when nothing matches.
	ErrTaskNotFound = errors.New("task not found")
	// ErrAmbiguousID is returned by Find when a prefix matches several tasks.
	ErrAmbiguousID = errors.New("ambiguous task id")
)

// Observer is told about completion toggles after they are saved.
type Observer interface {
	OnTaskToggled(ctx context.Context, task domain.Task)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, task domain.Task)

func (f ObserverFunc) OnTaskToggled(ctx context.Context, task domain.Task) { f(ctx, task) }

// Service owns the board and writes it through to the repo after every
// successful mutation. Operations on unknown ids are no-ops, not errors;
// errors only come from storage.
type Service struct {
	mu        sync.Mutex
	board     *domain.Board
	repo      repository.BoardRepo
	observers []Observer
	telemetry service.UseCaseObserver
	newID     func() string
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Service)

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

func WithUseCaseObserver(o service.UseCaseObserver) Option {
	return func(s *Service) { s.telemetry = service.ObserverOrNoop(o) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDs replaces the uuid generator.
func WithIDs(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService loads the board from repo. A missing board starts empty.
// Tasks with blank content are dropped individually, with a warning. A
// corrupt document also starts empty, with a warning; the stored document stays
// in place until the next save overwrites it. Other storage errors are
// returned.
func NewService(ctx context.Context, repo repository.BoardRepo, opts ...Option) (*Service, error) {
	s := &Service{
		repo:      repo,
		telemetry: service.NoopUseCaseObserver{},
		newID:     func() string { return uuid.New().String() },
		now:       func() time.Time { return time.Now().UTC() },
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	b, err := repo.Load(ctx)
	switch {
	case err == nil:
		if dropped := b.DropBlankTasks(); len(dropped) > 0 {
			s.logger.Warn("dropping stored tasks with blank content", "task_ids", dropped)
		}
		s.board = b
	case errors.Is(err, repository.ErrNotFound):
		s.board = domain.NewBoard()
	case errors.Is(err, repository.ErrCorrupt):
		s.logger.Warn("stored board is unreadable, starting empty", "error", err)
		s.board = domain.NewBoard()
	default:
		return nil, fmt.Errorf("loading board: %w", err)
	}
	return s, nil
}

// AddObserver registers o for toggle events.
func (s *Service) AddObserver(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Board returns a deep copy of the current board.
func (s *Service) Board() *domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Find resolves a full task id or a unique id prefix.
func (s *Service) Find(idOrPrefix string) (domain.Task, domain.LaneID, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return domain.Task{}, "", ErrTaskNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, lane, ok := s.board.Task(idOrPrefix); ok {
		return t, lane, nil
	}
	var (
		match domain.Task
		lane  domain.LaneID
		hits  int
	)
	for _, l := range s.board.Lanes {
		for _, t := range l.Tasks {
			if strings.HasPrefix(t.ID, idOrPrefix) {
				match, lane = t, l.ID
				hits++
			}
		}
	}
	switch hits {
	case 0:
		return domain.Task{}, "", fmt.Errorf("%w: %s", ErrTaskNotFound, idOrPrefix)
	case 1:
		return match, lane, nil
	default:
		return domain.Task{}, "", fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, idOrPrefix, hits)
	}
}

// AddTask appends a new incomplete task to the end of To Do. Blank content
// is ignored.
func (s *Service) AddTask(ctx context.Context, content string) (task domain.Task, changed bool, err error) {
	done := service.Track(ctx, s.telemetry, "board.add_task", nil)
	defer func() { done(changed, err) }()

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Task{}, false, nil
	}
	task = domain.NewTask(s.newID(), content, s.now())
	err = s.mutate(ctx, func(b *domain.Board) bool {
		todo := b.Lane(domain.LaneTodo)
		todo.Tasks = append(todo.Tasks, task)
		return true
	})
	if err != nil {
		return domain.Task{}, false, err
	}
	return task, true, nil
}

// ToggleCompletion flips the completed flag of id wherever it lives. The
// task stays in its lane.
func (s *Service) ToggleCompletion(ctx context.Context, id string) (changed bool, err error) {
	done := service.Track(ctx, s.telemetry, "board.toggle_completion", map[string]any{"task_id": id})
	defer func() { done(changed, err) }()

	var toggled domain.Task
	err = s.mutate(ctx, func(b *domain.Board) bool {
		li, ti, ok := b.Locate(id)
		if !ok {
			return false
		}
		t := &b.Lanes[li].Tasks[ti]
		t.Completed = !t.Completed
		toggled = *t
		changed = true
		return true
	})
	if err != nil || !changed {
		return false, err
	}
	s.notify(ctx, toggled)
	return true, nil
}

// DeleteTask removes id from whichever lane holds it.
func (s *Service) DeleteTask(ctx context.Context, id string) (changed bool, err error) {
	done := service.Track(ctx, s.telemetry, "board.delete_task", map[string]any{"task_id": id})
	defer func() { done(changed, err) }()

	err = s.mutate(ctx, func(b *domain.Board) bool {
		li, ti, ok := b.Locate(id)
		if !ok {
			return false
		}
		b.Lanes[li].RemoveAt(ti)
		changed = true
		return true
	})
	return changed && err == nil, err
}

// MoveTask moves id out of lane from into lane to at index, clamped to the
// destination length measured after removal. An invalid destination, a
// task not in from, or a drop onto the task's own position leaves the
// board unchanged. Moving never touches Completed.
func (s *Service) MoveTask(ctx context.Context, id string, from, to domain.LaneID, index int) (changed bool, err error) {
	done := service.Track(ctx, s.telemetry, "board.move_task", map[string]any{
		"task_id": id, "from": string(from), "to": string(to), "index": index,
	})
	defer func() { done(changed, err) }()

	err = s.mutate(ctx, func(b *domain.Board) bool {
		changed = moveTask(b, id, from, to, index)
		return changed
	})
	return changed && err == nil, err
}

// MoveTaskBy moves id to the end of lane to.
func (s *Service) MoveTaskBy(ctx context.Context, id string, to domain.LaneID) (bool, error) {
	s.mu.Lock()
	_, from, ok := s.board.Task(id)
	dest := s.board.Lane(to)
	end := 0
	if dest != nil {
		end = len(dest.Tasks)
	}
	s.mu.Unlock()
	if !ok || from == to {
		return false, nil
	}
	return s.MoveTask(ctx, id, from, to, end)
}

// Reorder shifts id within its lane by delta positions, clamped to the
// lane bounds.
func (s *Service) Reorder(ctx context.Context, id string, delta int) (bool, error) {
	s.mu.Lock()
	li, ti, ok := s.board.Locate(id)
	var lane domain.LaneID
	if ok {
		lane = s.board.Lanes[li].ID
	}
	s.mu.Unlock()
	if !ok || delta == 0 {
		return false, nil
	}
	return s.MoveTask(ctx, id, lane, lane, ti+delta)
}

func moveTask(b *domain.Board, id string, from, to domain.LaneID, index int) bool {
	dest := b.Lane(to)
	src := b.Lane(from)
	if dest == nil || src == nil {
		return false
	}
	cur := src.IndexOf(id)
	if cur < 0 {
		return false
	}
	if from == to {
		// Clamp against the post-removal length before comparing so a drop
		// past the end of the lane onto the last task is a no-op.
		target := index
		if target < 0 {
			target = 0
		}
		if target > len(src.Tasks)-1 {
			target = len(src.Tasks) - 1
		}
		if target == cur {
			return false
		}
	}
	t := src.RemoveAt(cur)
	dest.InsertAt(index, t)
	return true
}

// mutate applies fn to a copy of the board and persists it. When fn
// reports a change and the save succeeds the copy becomes the live board;
// otherwise the live board is untouched.
func (s *Service) mutate(ctx context.Context, fn func(b *domain.Board) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.board.Clone()
	if !fn(next) {
		return nil
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	s.board = next
	return nil
}

func (s *Service) notify(ctx context.Context, t domain.Task) {
	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()
	for _, o := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Warn("board observer panicked", "panic", r)
				}
			}()
			o.OnTaskToggled(ctx, t)
		}()
	}
}

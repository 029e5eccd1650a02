package board

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/repository"
	"github.com/alexanderramin/focusboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRepo wraps a real repo and fails saves on demand.
type flakyRepo struct {
	repository.BoardRepo
	saves   int
	failErr error
	loadErr error
}

func (r *flakyRepo) Load(ctx context.Context) (*domain.Board, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.BoardRepo.Load(ctx)
}

func (r *flakyRepo) Save(ctx context.Context, b *domain.Board) error {
	r.saves++
	if r.failErr != nil {
		return r.failErr
	}
	return r.BoardRepo.Save(ctx, b)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func newTestService(t *testing.T, seed *domain.Board, opts ...Option) (*Service, *flakyRepo) {
	t.Helper()
	ctx := context.Background()
	repo := &flakyRepo{BoardRepo: repository.NewKVBoardRepo(repository.NewMemoryKV())}
	if seed != nil {
		require.NoError(t, repo.BoardRepo.Save(ctx, seed))
	}
	opts = append([]Option{WithIDs(sequentialIDs()), WithClock(func() time.Time { return testutil.FixedNow })}, opts...)
	svc, err := NewService(ctx, repo, opts...)
	require.NoError(t, err)
	return svc, repo
}

func TestNewService_EmptyStorage(t *testing.T) {
	svc, _ := newTestService(t, nil)
	b := svc.Board()

	require.Len(t, b.Lanes, 3)
	titles := []string{b.Lanes[0].Title, b.Lanes[1].Title, b.Lanes[2].Title}
	assert.Equal(t, []string{"To Do", "In Progress", "Done"}, titles)
	assert.Zero(t, b.TaskCount())
}

func TestNewService_CorruptStorageFailsClosed(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.KeyTaskColumns, `{"not":"lanes"`))

	svc, err := NewService(ctx, repository.NewKVBoardRepo(kv))
	require.NoError(t, err)
	assert.Zero(t, svc.Board().TaskCount())

	raw, _, _ := kv.Get(ctx, repository.KeyTaskColumns)
	assert.Equal(t, `{"not":"lanes"`, raw, "corrupt document is left until the next save")
}

func TestNewService_DropsOnlyBlankTasks(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.KeyTaskColumns, `[
		{"id":"todo","title":"To Do","tasks":[
			{"id":"a","content":"write report","completed":false,"createdAt":"2025-06-15T10:00:00Z"},
			{"id":"b","content":"   ","completed":false,"createdAt":"2025-06-15T10:00:00Z"}]},
		{"id":"inProgress","title":"In Progress","tasks":[]},
		{"id":"done","title":"Done","tasks":[
			{"id":"c","content":"ship","completed":true,"createdAt":"2025-06-15T10:00:00Z"}]}]`))

	svc, err := NewService(ctx, repository.NewKVBoardRepo(kv))
	require.NoError(t, err)
	b := svc.Board()
	assert.Equal(t, 2, b.TaskCount())
	assert.Equal(t, []string{"write report"}, testutil.LaneContents(b, domain.LaneTodo))
	_, _, ok := b.Task("b")
	assert.False(t, ok)

	_, err = svc.ToggleCompletion(ctx, "a")
	require.NoError(t, err)
	reloaded, err := repository.NewKVBoardRepo(kv).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.TaskCount(), "the next save keeps every readable task")
}

func TestNewService_StorageErrorPropagates(t *testing.T) {
	repo := &flakyRepo{
		BoardRepo: repository.NewKVBoardRepo(repository.NewMemoryKV()),
		loadErr:   errors.New("disk unplugged"),
	}
	_, err := NewService(context.Background(), repo)
	assert.ErrorContains(t, err, "disk unplugged")
}

func TestAddTask(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testutil.NewTestBoard(2, 0, 0))

	for _, blank := range []string{"", "   ", "\t\n"} {
		_, changed, err := svc.AddTask(ctx, blank)
		require.NoError(t, err)
		assert.False(t, changed, "%q", blank)
	}
	assert.Zero(t, repo.saves)
	assert.Equal(t, []string{"todo 1", "todo 2"}, testutil.LaneContents(svc.Board(), domain.LaneTodo))

	task, changed, err := svc.AddTask(ctx, " hi ")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "hi", task.Content)
	assert.Equal(t, "task-1", task.ID)
	assert.False(t, task.Completed)
	assert.Equal(t, testutil.FixedNow, task.CreatedAt)
	assert.Equal(t, []string{"todo 1", "todo 2", "hi"}, testutil.LaneContents(svc.Board(), domain.LaneTodo))
	assert.Equal(t, 1, repo.saves)
}

func TestAddTask_UsesUUIDByDefault(t *testing.T) {
	svc, err := NewService(context.Background(), repository.NewKVBoardRepo(repository.NewMemoryKV()))
	require.NoError(t, err)

	a, _, err := svc.AddTask(context.Background(), "one")
	require.NoError(t, err)
	b, _, err := svc.AddTask(context.Background(), "two")
	require.NoError(t, err)
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestToggleCompletion(t *testing.T) {
	ctx := context.Background()
	seed := testutil.NewTestBoard(0, 1, 0)
	id := seed.Lanes[1].Tasks[0].ID

	var seen []domain.Task
	svc, _ := newTestService(t, seed, WithObserver(ObserverFunc(func(_ context.Context, task domain.Task) {
		seen = append(seen, task)
	})))

	changed, err := svc.ToggleCompletion(ctx, id)
	require.NoError(t, err)
	assert.True(t, changed)
	task, lane, err := svc.Find(id)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, domain.LaneInProgress, lane, "toggling never moves the task")

	_, err = svc.ToggleCompletion(ctx, id)
	require.NoError(t, err)
	task, _, _ = svc.Find(id)
	assert.False(t, task.Completed)

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Completed)
	assert.False(t, seen[1].Completed)

	changed, err = svc.ToggleCompletion(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, seen, 2)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	seed := testutil.NewTestBoard(3, 2, 1)
	svc, repo := newTestService(t, seed)
	before := svc.Board()

	changed, err := svc.DeleteTask(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, svc.Board())
	assert.Zero(t, repo.saves)

	changed, err = svc.DeleteTask(ctx, seed.Lanes[0].Tasks[1].ID)
	require.NoError(t, err)
	assert.True(t, changed)

	after := svc.Board()
	assert.Equal(t, []string{"todo 1", "todo 3"}, testutil.LaneContents(after, domain.LaneTodo))
	assert.Equal(t, testutil.LaneContents(before, domain.LaneInProgress), testutil.LaneContents(after, domain.LaneInProgress))
	assert.Equal(t, testutil.LaneContents(before, domain.LaneDone), testutil.LaneContents(after, domain.LaneDone))
	assert.Equal(t, before.TaskCount()-1, after.TaskCount())
}

func TestMoveTask(t *testing.T) {
	cases := []struct {
		name     string
		from, to domain.LaneID
		taskIdx  int
		index    int
		changed  bool
		wantTodo []string
		wantProg []string
	}{
		{"across lanes to front", domain.LaneTodo, domain.LaneInProgress, 0, 0, true,
			[]string{"todo 2", "todo 3"}, []string{"todo 1", "inProgress 1", "inProgress 2"}},
		{"across lanes past end clamps", domain.LaneTodo, domain.LaneInProgress, 2, 99, true,
			[]string{"todo 1", "todo 2"}, []string{"inProgress 1", "inProgress 2", "todo 3"}},
		{"negative index clamps to front", domain.LaneTodo, domain.LaneInProgress, 1, -4, true,
			[]string{"todo 1", "todo 3"}, []string{"todo 2", "inProgress 1", "inProgress 2"}},
		{"within lane down", domain.LaneTodo, domain.LaneTodo, 0, 2, true,
			[]string{"todo 2", "todo 3", "todo 1"}, []string{"inProgress 1", "inProgress 2"}},
		{"within lane up", domain.LaneTodo, domain.LaneTodo, 2, 0, true,
			[]string{"todo 3", "todo 1", "todo 2"}, []string{"inProgress 1", "inProgress 2"}},
		{"own position", domain.LaneTodo, domain.LaneTodo, 1, 1, false,
			[]string{"todo 1", "todo 2", "todo 3"}, []string{"inProgress 1", "inProgress 2"}},
		{"last task past end is own position", domain.LaneTodo, domain.LaneTodo, 2, 10, false,
			[]string{"todo 1", "todo 2", "todo 3"}, []string{"inProgress 1", "inProgress 2"}},
		{"wrong source lane", domain.LaneDone, domain.LaneInProgress, 0, 0, false,
			[]string{"todo 1", "todo 2", "todo 3"}, []string{"inProgress 1", "inProgress 2"}},
		{"invalid destination", domain.LaneTodo, domain.LaneID("backlog"), 0, 0, false,
			[]string{"todo 1", "todo 2", "todo 3"}, []string{"inProgress 1", "inProgress 2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			seed := testutil.NewTestBoard(3, 2, 1)
			svc, repo := newTestService(t, seed)
			before := svc.Board()
			id := seed.Lanes[0].Tasks[tc.taskIdx].ID

			changed, err := svc.MoveTask(ctx, id, tc.from, tc.to, tc.index)
			require.NoError(t, err)
			assert.Equal(t, tc.changed, changed)

			after := svc.Board()
			assert.Equal(t, before.TaskCount(), after.TaskCount())
			assert.Equal(t, tc.wantTodo, testutil.LaneContents(after, domain.LaneTodo))
			assert.Equal(t, tc.wantProg, testutil.LaneContents(after, domain.LaneInProgress))
			if !tc.changed {
				assert.Equal(t, before, after)
				assert.Zero(t, repo.saves)
			}
		})
	}
}

func TestMoveTask_PreservesCount(t *testing.T) {
	ctx := context.Background()
	seed := testutil.NewTestBoard(4, 3, 2)
	svc, _ := newTestService(t, seed)
	total := seed.TaskCount()

	// Walk every task through every lane and index.
	for _, l := range seed.Lanes {
		for _, task := range l.Tasks {
			for _, to := range domain.LaneOrder {
				for idx := -1; idx <= 5; idx++ {
					_, from, err := svc.Find(task.ID)
					require.NoError(t, err)
					_, err = svc.MoveTask(ctx, task.ID, from, to, idx)
					require.NoError(t, err)
					require.Equal(t, total, svc.Board().TaskCount())
					require.NoError(t, svc.Board().Validate())
				}
			}
		}
	}
}

func TestMoveTask_KeepsCompletedFlag(t *testing.T) {
	ctx := context.Background()
	seed := domain.NewBoard()
	seed.Lanes[0].Tasks = append(seed.Lanes[0].Tasks, testutil.NewTestTask("open"))
	seed.Lanes[2].Tasks = append(seed.Lanes[2].Tasks, testutil.NewTestTask("finished", testutil.WithCompleted()))
	svc, _ := newTestService(t, seed)

	open, finished := seed.Lanes[0].Tasks[0].ID, seed.Lanes[2].Tasks[0].ID
	_, err := svc.MoveTaskBy(ctx, open, domain.LaneDone)
	require.NoError(t, err)
	_, err = svc.MoveTaskBy(ctx, finished, domain.LaneTodo)
	require.NoError(t, err)

	task, lane, _ := svc.Find(open)
	assert.Equal(t, domain.LaneDone, lane)
	assert.False(t, task.Completed, "entering Done does not complete a task")
	task, lane, _ = svc.Find(finished)
	assert.Equal(t, domain.LaneTodo, lane)
	assert.True(t, task.Completed, "leaving Done does not reopen a task")
}

func TestMoveTaskBy_AppendsToEnd(t *testing.T) {
	ctx := context.Background()
	seed := testutil.NewTestBoard(2, 2, 0)
	svc, _ := newTestService(t, seed)

	changed, err := svc.MoveTaskBy(ctx, seed.Lanes[0].Tasks[0].ID, domain.LaneInProgress)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"inProgress 1", "inProgress 2", "todo 1"}, testutil.LaneContents(svc.Board(), domain.LaneInProgress))

	changed, err = svc.MoveTaskBy(ctx, seed.Lanes[0].Tasks[1].ID, domain.LaneTodo)
	require.NoError(t, err)
	assert.False(t, changed, "same lane")
}

func TestReorder(t *testing.T) {
	ctx := context.Background()
	seed := testutil.NewTestBoard(3, 0, 0)
	svc, _ := newTestService(t, seed)
	first := seed.Lanes[0].Tasks[0].ID

	changed, err := svc.Reorder(ctx, first, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"todo 2", "todo 1", "todo 3"}, testutil.LaneContents(svc.Board(), domain.LaneTodo))

	_, err = svc.Reorder(ctx, first, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"todo 2", "todo 3", "todo 1"}, testutil.LaneContents(svc.Board(), domain.LaneTodo))

	changed, err = svc.Reorder(ctx, first, 1)
	require.NoError(t, err)
	assert.False(t, changed, "already last")
}

func TestSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	seed := testutil.NewTestBoard(2, 1, 0)
	svc, repo := newTestService(t, seed)
	before := svc.Board()
	repo.failErr = errors.New("quota exceeded")

	_, _, err := svc.AddTask(ctx, "new")
	assert.ErrorContains(t, err, "quota exceeded")
	_, err = svc.DeleteTask(ctx, seed.Lanes[0].Tasks[0].ID)
	assert.Error(t, err)
	_, err = svc.ToggleCompletion(ctx, seed.Lanes[1].Tasks[0].ID)
	assert.Error(t, err)
	changed, err := svc.MoveTask(ctx, seed.Lanes[0].Tasks[0].ID, domain.LaneTodo, domain.LaneDone, 0)
	assert.Error(t, err)
	assert.False(t, changed)

	assert.Equal(t, before, svc.Board())
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	repo := repository.NewKVBoardRepo(kv)

	svc, err := NewService(ctx, repo)
	require.NoError(t, err)
	task, _, err := svc.AddTask(ctx, "ship it")
	require.NoError(t, err)
	_, err = svc.MoveTaskBy(ctx, task.ID, domain.LaneInProgress)
	require.NoError(t, err)

	reopened, err := NewService(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, svc.Board(), reopened.Board())
}

func TestFind(t *testing.T) {
	seed := domain.NewBoard()
	seed.Lanes[0].Tasks = append(seed.Lanes[0].Tasks,
		testutil.NewTestTask("a", testutil.WithTaskID("abc123")),
		testutil.NewTestTask("b", testutil.WithTaskID("abd456")),
	)
	svc, _ := newTestService(t, seed)

	task, lane, err := svc.Find("abc")
	require.NoError(t, err)
	assert.Equal(t, "a", task.Content)
	assert.Equal(t, domain.LaneTodo, lane)

	_, _, err = svc.Find("ab")
	assert.ErrorIs(t, err, ErrAmbiguousID)
	_, _, err = svc.Find("zz")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, _, err = svc.Find("  ")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestBoardSnapshotIsIsolated(t *testing.T) {
	svc, _ := newTestService(t, testutil.NewTestBoard(1, 0, 0))
	snap := svc.Board()
	snap.Lanes[0].Tasks[0].Content = "mutated"
	assert.Equal(t, "todo 1", svc.Board().Lanes[0].Tasks[0].Content)
}

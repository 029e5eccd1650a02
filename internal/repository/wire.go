package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// Wire shapes of the taskColumns document: an array of three lanes, each
// {id, title, tasks: [{id, content, completed, createdAt}]}.

type wireTask struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Completed bool     `json:"completed"`
	CreatedAt wireTime `json:"createdAt"`
}

type wireLane struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Tasks []wireTask `json:"tasks"`
}

// wireTime writes RFC 3339 and reads RFC 3339, epoch milliseconds as a
// string, or epoch milliseconds as a number.
type wireTime time.Time

func (t wireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = wireTime{}
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
		*t = wireTime(time.UnixMilli(ms).UTC())
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = wireTime{}
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = wireTime(time.UnixMilli(ms).UTC())
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("createdAt %q: %w", s, err)
	}
	*t = wireTime(parsed.UTC())
	return nil
}

func encodeBoard(b *domain.Board) []wireLane {
	lanes := make([]wireLane, 0, len(b.Lanes))
	for _, l := range b.Lanes {
		wl := wireLane{ID: string(l.ID), Title: l.Title, Tasks: make([]wireTask, 0, len(l.Tasks))}
		for _, t := range l.Tasks {
			wl.Tasks = append(wl.Tasks, wireTask{
				ID:        t.ID,
				Content:   t.Content,
				Completed: t.Completed,
				CreatedAt: wireTime(t.CreatedAt),
			})
		}
		lanes = append(lanes, wl)
	}
	return lanes
}

func decodeBoard(lanes []wireLane) *domain.Board {
	b := &domain.Board{Lanes: make([]domain.Lane, 0, len(lanes))}
	for _, wl := range lanes {
		l := domain.Lane{ID: domain.LaneID(wl.ID), Title: wl.Title, Tasks: make([]domain.Task, 0, len(wl.Tasks))}
		for _, wt := range wl.Tasks {
			l.Tasks = append(l.Tasks, domain.Task{
				ID:        wt.ID,
				Content:   wt.Content,
				Completed: wt.Completed,
				CreatedAt: time.Time(wt.CreatedAt),
			})
		}
		b.Lanes = append(b.Lanes, l)
	}
	return b
}

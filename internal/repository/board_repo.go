package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// KVBoardRepo stores the whole board as one JSON document under taskColumns.
type KVBoardRepo struct {
	kv KV
}

func NewKVBoardRepo(kv KV) *KVBoardRepo {
	return &KVBoardRepo{kv: kv}
}

// Load returns ErrNotFound on a fresh store and ErrCorrupt when the document
// does not decode or does not describe the fixed three-lane layout.
func (r *KVBoardRepo) Load(ctx context.Context) (*domain.Board, error) {
	var lanes []wireLane
	if err := getJSON(ctx, r.kv, KeyTaskColumns, &lanes); err != nil {
		return nil, err
	}
	b := decodeBoard(lanes)
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", KeyTaskColumns, ErrCorrupt, err)
	}
	return b, nil
}

func (r *KVBoardRepo) Save(ctx context.Context, b *domain.Board) error {
	return setJSON(ctx, r.kv, KeyTaskColumns, encodeBoard(b))
}

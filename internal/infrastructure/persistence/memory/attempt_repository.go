package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"
)

// AttemptRepository インメモリ実装のattempt.Repository
// 保持期間を過ぎたAttemptはスイーパーが回収する
type AttemptRepository struct {
	mu        sync.RWMutex
	byID      map[string]*attempt.Attempt
	bySession map[string][]string // セッションIDごとのAttempt ID（保存順）
	retention time.Duration
}

// NewAttemptRepository 新しいAttemptRepositoryを作成
func NewAttemptRepository(retention time.Duration) *AttemptRepository {
	return &AttemptRepository{
		byID:      make(map[string]*attempt.Attempt),
		bySession: make(map[string][]string),
		retention: retention,
	}
}

// Save Attemptを保存
func (r *AttemptRepository) Save(ctx context.Context, a *attempt.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.AttemptID()]; !exists {
		r.bySession[a.SessionID()] = append(r.bySession[a.SessionID()], a.AttemptID())
	}

	stored := *a
	r.byID[a.AttemptID()] = &stored
	return nil
}

// Update Attemptを更新
func (r *AttemptRepository) Update(ctx context.Context, a *attempt.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.AttemptID()]; !exists {
		return attempt.ErrAttemptNotFound
	}

	stored := *a
	r.byID[a.AttemptID()] = &stored
	return nil
}

// FindByAttemptID Attempt IDでAttemptを取得
func (r *AttemptRepository) FindByAttemptID(ctx context.Context, attemptID string) (*attempt.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.byID[attemptID]
	if !exists {
		return nil, attempt.ErrAttemptNotFound
	}

	found := *stored
	return &found, nil
}

// FindBySessionID セッションIDでAttempt一覧を新しい順に取得
func (r *AttemptRepository) FindBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]*attempt.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySession[sessionID]

	var attempts []*attempt.Attempt
	// 保存順の逆から辿ることで新しい順になる
	for i := len(ids) - 1 - offset; i >= 0 && len(attempts) < limit; i-- {
		stored, exists := r.byID[ids[i]]
		if !exists {
			continue
		}
		found := *stored
		attempts = append(attempts, &found)
	}

	return attempts, nil
}

// FindActiveBySessionID セッションの非終了状態のAttemptを取得
// 進行中のAttemptは常に最新のAttemptになる
func (r *AttemptRepository) FindActiveBySessionID(ctx context.Context, sessionID string) (*attempt.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySession[sessionID]
	for i := len(ids) - 1; i >= 0; i-- {
		stored, exists := r.byID[ids[i]]
		if !exists {
			continue
		}
		if !stored.Status().IsTerminal() {
			found := *stored
			return &found, nil
		}
		// 最新のAttemptが終了状態なら、それ以前も全て終了している
		break
	}

	return nil, attempt.ErrAttemptNotFound
}

// StartSweeper 保持期間を過ぎたAttemptを回収するバックグラウンドゴルーチンを起動
// ctxのキャンセルで停止する
func (r *AttemptRepository) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

// sweep 保持期間を過ぎたAttemptを削除
func (r *AttemptRepository) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for sessionID, ids := range r.bySession {
		var kept []string
		for _, id := range ids {
			stored, exists := r.byID[id]
			if !exists {
				continue
			}
			if now.Sub(stored.UpdatedAt()) > r.retention {
				delete(r.byID, id)
				continue
			}
			kept = append(kept, id)
		}
		if len(kept) == 0 {
			delete(r.bySession, sessionID)
		} else {
			r.bySession[sessionID] = kept
		}
	}
}

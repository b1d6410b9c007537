package cache

import (
	"context"
	"sync"
	"time"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/capability"
)

// memoryEntry TTL付きのキャッシュエントリ
type memoryEntry struct {
	entry     capability.Entry
	expiresAt time.Time
}

// MemoryStore インメモリ実装のcapability.Store
// セッションTTLを超えたエントリはスイーパーが回収する
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
}

// NewMemoryStore 新しいMemoryStoreを作成
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
	}
}

// Get セッションのキャッシュ済み判定を取得
// エントリが存在しないか期限切れの場合はErrNotCachedを返す
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*capability.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[sessionID]
	if !ok || time.Now().After(record.expiresAt) {
		return nil, capability.ErrNotCached
	}

	entry := record.entry
	return &entry, nil
}

// Set セッションの判定を保存
func (s *MemoryStore) Set(ctx context.Context, sessionID string, canMakePayment bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.data[sessionID] = memoryEntry{
		entry: capability.Entry{
			CanMakePayment: canMakePayment,
			CachedAt:       now,
		},
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

// StartSweeper 期限切れエントリを回収するバックグラウンドゴルーチンを起動
// ctxのキャンセルで停止する
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

// sweep 期限切れエントリを削除
func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for sessionID, record := range s.data {
		if now.After(record.expiresAt) {
			delete(s.data, sessionID)
		}
	}
}

package credstore

import (
	"context"
	"sync"

	"github.com/herfa/gate/internal/gate/domain"
)

// memoryArea is the default session-scoped area: it lives exactly as long
// as the process, the closest server-side analogue to tab-scoped storage.
type memoryArea struct {
	mu   sync.RWMutex
	rows map[string]domain.CredentialRow
}

// NewMemoryArea returns an empty in-process area.
func NewMemoryArea() Area {
	return &memoryArea{rows: make(map[string]domain.CredentialRow)}
}

func (a *memoryArea) Put(ctx context.Context, row domain.CredentialRow) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows[row.Key] = row
	return nil
}

func (a *memoryArea) Get(ctx context.Context, key string) (domain.CredentialRow, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	row, ok := a.rows[key]
	if !ok {
		return domain.CredentialRow{}, ErrAbsent
	}
	return row, nil
}

func (a *memoryArea) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.rows, key)
	return nil
}

// Package preview issues revocable handles that stand in for file content
// while it is displayed or offered for download.
package preview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"batchpix/internal/media"
)

// ErrUnknownHandle is returned for IDs that were never issued or have been
// revoked. Released IDs are forgotten.
var ErrUnknownHandle = errors.New("unknown preview handle")

// Handle identifies issued content. It stays valid until revoked.
type Handle struct {
	ID        string
	Name      string
	MediaType string
	Size      int64
	Label     string
}

// Registry tracks every handle it issues so each one can be released exactly
// once.
type Registry struct {
	mu     sync.Mutex
	live   map[string]media.SourceFile
	issued int
}

func NewRegistry() *Registry {
	return &Registry{
		live: make(map[string]media.SourceFile),
	}
}

// Issue registers f and returns a new handle for it.
func (r *Registry) Issue(f media.SourceFile, label string) Handle {
	id := uuid.NewString()

	r.mu.Lock()
	r.live[id] = f
	r.issued++
	r.mu.Unlock()

	return Handle{
		ID:        id,
		Name:      f.Name,
		MediaType: f.MediaType,
		Size:      f.Size(),
		Label:     label,
	}
}

// Open resolves a handle to its content.
func (r *Registry) Open(id string) (media.SourceFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.live[id]; ok {
		return f, nil
	}
	return media.SourceFile{}, fmt.Errorf("%w: %s", ErrUnknownHandle, id)
}

// Revoke releases a handle. It reports true only for the call that actually
// released it.
func (r *Registry) Revoke(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live[id]; !ok {
		return false
	}
	delete(r.live, id)
	return true
}

// Live is the number of handles issued and not yet revoked.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Issued is the number of handles ever issued.
func (r *Registry) Issued() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.issued
}

// SizeLabel renders a byte count for display.
func SizeLabel(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

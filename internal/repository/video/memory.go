package video

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/types"
)

// MemoryVideoRepo keeps videos in process memory. Records are deep copied
// on the way in and out so callers never share slices with the store.
type MemoryVideoRepo struct {
	mu     sync.RWMutex
	videos map[string]*video.Video
	now    func() time.Time
}

func NewMemoryVideoRepo() *MemoryVideoRepo {
	return &MemoryVideoRepo{videos: make(map[string]*video.Video), now: time.Now}
}

func clone(v *video.Video) *video.Video {
	out := *v
	out.Segments = append([]types.Segment{}, v.Segments...)
	out.Questions = make([]types.Question, len(v.Questions))
	for i, q := range v.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return &out
}

func (m *MemoryVideoRepo) Create(ctx context.Context, v *video.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	m.videos[v.ID.String()] = clone(v)
	return nil
}

func (m *MemoryVideoRepo) GetByID(ctx context.Context, id string) (*video.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.videos[id]
	if !ok {
		return nil, video.ErrVideoNotFound
	}
	return clone(v), nil
}

func (m *MemoryVideoRepo) List(ctx context.Context, offset, limit int) ([]video.Video, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*video.Video, 0, len(m.videos))
	for _, v := range m.videos {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []video.Video{}, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]video.Video, 0, end-offset)
	for _, v := range all[offset:end] {
		out = append(out, *clone(v))
	}
	return out, total, nil
}

func (m *MemoryVideoRepo) Save(ctx context.Context, v *video.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := v.ID.String()
	if _, ok := m.videos[key]; !ok {
		return video.ErrVideoNotFound
	}
	v.UpdatedAt = m.now()
	m.videos[key] = clone(v)
	return nil
}

func (m *MemoryVideoRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.videos[id]; !ok {
		return video.ErrVideoNotFound
	}
	delete(m.videos, id)
	return nil
}

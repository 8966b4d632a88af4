package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("quiz session not found")

// Session remembers which stored questions an assembled quiz presented,
// in quiz order, so submissions can be graded against quiz positions.
type Session struct {
	QuizID      string      `json:"quiz_id"`
	VideoID     string      `json:"video_id"`
	QuestionIDs []uuid.UUID `json:"question_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewSession captures the identity of q.
func NewSession(q *Quiz) Session {
	return Session{
		QuizID:      q.QuizID,
		VideoID:     q.VideoID,
		QuestionIDs: q.QuestionIDs(),
		CreatedAt:   q.CreatedAt,
	}
}

type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, quizID string) (*Session, error)
}

func SessionKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:session", quizID)
}

type redisSessionStore struct {
	rc  *redis.Client
	ttl time.Duration
}

// NewRedisSessionStore keeps sessions in redis, expiring after ttl.
func NewRedisSessionStore(rc *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rc: rc, ttl: ttl}
}

func (r *redisSessionStore) Save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("can't marshal quiz session: %w", err)
	}
	if err := r.rc.Set(SessionKey(s.QuizID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("storing quiz session: %w", err)
	}
	return nil
}

func (r *redisSessionStore) Get(ctx context.Context, quizID string) (*Session, error) {
	raw, err := r.rc.Get(SessionKey(quizID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("fetching quiz session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decoding quiz session: %w", err)
	}
	return &s, nil
}

type memorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemorySessionStore keeps sessions in process memory. Expired entries
// are dropped on access and swept on every Save.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (m *memorySessionStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.ttl > 0 {
		for id, entry := range m.sessions {
			if now.After(entry.expiresAt) {
				delete(m.sessions, id)
			}
		}
	}
	m.sessions[s.QuizID] = memoryEntry{session: s, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *memorySessionStore) Get(ctx context.Context, quizID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[quizID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(entry.expiresAt) {
		delete(m.sessions, quizID)
		return nil, ErrSessionNotFound
	}
	s := entry.session
	return &s, nil
}

package topology

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"ftth-net.id/dashboard/pkg/redis"
)

const DraftTTL = time.Hour

var ErrNoDraft = errors.New("cable is not being edited")

// DraftStore keeps in-progress cable edits per user. Drafts expire after
// DraftTTL without being saved.
type DraftStore interface {
	Get(ctx context.Context, owner string, cableID int) (*Draft, error)
	Put(ctx context.Context, owner string, d *Draft) error
	Delete(ctx context.Context, owner string, cableID int) error
	// List returns every draft the owner has open, keyed by cable.
	List(ctx context.Context, owner string) (map[int]*Draft, error)
}

func draftKey(owner string, cableID int) string {
	return fmt.Sprintf("draft:%s:%d", owner, cableID)
}

type memoryEntry struct {
	draft   Draft
	expires time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]map[int]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]map[int]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, owner string, cableID int) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[owner][cableID]
	if !ok || !s.now().Before(e.expires) {
		delete(s.entries[owner], cableID)
		return nil, ErrNoDraft
	}
	d := Draft{CableID: e.draft.CableID, Points: e.draft.Points.clone()}
	return &d, nil
}

func (s *MemoryStore) Put(_ context.Context, owner string, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[owner] == nil {
		s.entries[owner] = make(map[int]memoryEntry)
	}
	s.entries[owner][d.CableID] = memoryEntry{
		draft:   Draft{CableID: d.CableID, Points: d.Points.clone()},
		expires: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, owner string, cableID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries[owner], cableID)
	if len(s.entries[owner]) == 0 {
		delete(s.entries, owner)
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context, owner string) (map[int]*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make(map[int]*Draft)
	for id, e := range s.entries[owner] {
		if !now.Before(e.expires) {
			delete(s.entries[owner], id)
			continue
		}
		out[id] = &Draft{CableID: id, Points: e.draft.Points.clone()}
	}
	return out, nil
}

// RedisStore keeps drafts in Redis so they survive a restart and are shared
// between dashboard replicas. Each owner has an index set of open cable ids.
type RedisStore struct {
	client *redis.RedisClient
	ttl    time.Duration
}

func NewRedisStore(client *redis.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func indexKey(owner string) string {
	return "drafts:" + owner
}

func (s *RedisStore) Get(ctx context.Context, owner string, cableID int) (*Draft, error) {
	raw, err := s.client.Get(ctx, draftKey(owner, cableID))
	if err == redis.Nil {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, errors.Wrap(err, "load draft")
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, errors.Wrap(err, "decode draft")
	}
	return &d, nil
}

func (s *RedisStore) Put(ctx context.Context, owner string, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "encode draft")
	}
	if err := s.client.Set(ctx, draftKey(owner, d.CableID), raw, s.ttl); err != nil {
		return errors.Wrap(err, "store draft")
	}
	return s.client.AddToSet(ctx, indexKey(owner), d.CableID, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, owner string, cableID int) error {
	if err := s.client.Delete(ctx, draftKey(owner, cableID)); err != nil {
		return errors.Wrap(err, "delete draft")
	}
	return s.client.RemoveFromSet(ctx, indexKey(owner), cableID)
}

func (s *RedisStore) List(ctx context.Context, owner string) (map[int]*Draft, error) {
	ids, err := s.client.SetMembers(ctx, indexKey(owner))
	if err != nil {
		return nil, errors.Wrap(err, "list drafts")
	}
	out := make(map[int]*Draft, len(ids))
	for _, member := range ids {
		id, err := cast.ToIntE(member)
		if err != nil {
			continue
		}
		d, err := s.Get(ctx, owner, id)
		if errors.Is(err, ErrNoDraft) {
			_ = s.client.RemoveFromSet(ctx, indexKey(owner), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = d
	}
	return out, nil
}

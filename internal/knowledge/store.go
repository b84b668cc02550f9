package knowledge

import (
	cryptoRand "crypto/rand"
	"errors"
	"math/big"
	"sort"
	"sync"
	"time"

	"agentboard/internal/types"
)

// DefaultLimit caps a milestone listing when the caller does not ask
// for a specific amount.
const DefaultLimit = 50

// ErrMilestoneNotFound is returned when a milestone is not in the store
var ErrMilestoneNotFound = errors.New("milestone not found")

// Store is the project knowledge base the orchestrator appends
// milestones to and the dashboard reads.
type Store interface {
	AddMilestone(m types.Milestone) (types.Milestone, error)
	ListMilestones(limit int) ([]types.Milestone, error)
}

// InMemoryStore is a thread-safe in-memory Store, the default when no
// database is configured.
type InMemoryStore struct {
	mu         sync.RWMutex
	milestones map[string]types.Milestone
}

// NewInMemoryStore creates an empty in-memory knowledge store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{milestones: make(map[string]types.Milestone)}
}

// AddMilestone records a milestone, assigning an id and timestamp when
// the caller left them empty.
func (s *InMemoryStore) AddMilestone(m types.Milestone) (types.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = generateID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	s.milestones[m.ID] = m
	return m, nil
}

// ListMilestones returns the newest milestones first, capped at limit.
func (s *InMemoryStore) ListMilestones(limit int) ([]types.Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultLimit
	}

	milestones := make([]types.Milestone, 0, len(s.milestones))
	for _, m := range s.milestones {
		milestones = append(milestones, m)
	}

	sort.Slice(milestones, func(i, j int) bool {
		return milestones[i].CreatedAt.After(milestones[j].CreatedAt)
	})

	if len(milestones) > limit {
		milestones = milestones[:limit]
	}

	return milestones, nil
}

func generateID() string {
	return time.Now().Format("20060102150405") + "-" + randString(8)
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		idx, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			panic(err)
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b)
}

package knowledge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentboard/internal/types"
)

func TestAddMilestoneAssignsIDAndTimestamp(t *testing.T) {
	store := NewInMemoryStore()

	m, err := store.AddMilestone(types.Milestone{Title: "first deploy"})
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestListMilestonesNewestFirst(t *testing.T) {
	store := NewInMemoryStore()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		_, err := store.AddMilestone(types.Milestone{
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	milestones, err := store.ListMilestones(0)
	require.NoError(t, err)
	require.Len(t, milestones, 3)

	assert.Equal(t, "newest", milestones[0].Title)
	assert.Equal(t, "oldest", milestones[2].Title)
}

func TestListMilestonesLimit(t *testing.T) {
	store := NewInMemoryStore()

	for i := 0; i < 5; i++ {
		_, err := store.AddMilestone(types.Milestone{Title: "m"})
		require.NoError(t, err)
	}

	milestones, err := store.ListMilestones(2)
	require.NoError(t, err)
	assert.Len(t, milestones, 2)
}

func TestListMilestonesEmpty(t *testing.T) {
	store := NewInMemoryStore()

	milestones, err := store.ListMilestones(10)
	require.NoError(t, err)
	assert.Empty(t, milestones)
}

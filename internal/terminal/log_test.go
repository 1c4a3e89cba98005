package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendStampsTimeAndKeepsOrder(t *testing.T) {
	ticks := []time.Time{
		time.Date(2026, 1, 2, 9, 4, 5, 0, time.UTC),
		time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC),
		time.Date(2026, 1, 3, 0, 0, 1, 0, time.UTC),
	}
	var n int
	store := NewStore(WithClock(func() time.Time {
		now := ticks[n]
		n++
		return now
	}))

	store.Append("first", CategoryCommand)
	store.Append("second", CategorySystem)
	store.Append("third", CategoryAI)

	assert.Equal(t, []Entry{
		{Category: CategoryCommand, Content: "first", Timestamp: "09:04:05"},
		{Category: CategorySystem, Content: "second", Timestamp: "23:59:59"},
		{Category: CategoryAI, Content: "third", Timestamp: "00:00:01"},
	}, store.All())
	assert.Equal(t, 3, store.Len())
}

func TestStore_AllReturnsCopy(t *testing.T) {
	store := NewStore(WithClock(fixedClock))
	store.Append("original", CategorySystem)

	entries := store.All()
	entries[0].Content = "mutated"

	require.Len(t, store.All(), 1)
	assert.Equal(t, "original", store.All()[0].Content)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	store.Append("a", CategorySystem)
	store.Append("b", CategoryError)

	store.Clear()

	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.All())

	store.Append("c", CategorySystem)
	assert.Equal(t, []string{"c"}, contents(store.All()))
}

func TestSession_NotifiesListeners(t *testing.T) {
	session := NewSession(nil)
	var calls int
	session.OnChange(func() { calls++ })

	session.Append("x", CategorySystem)
	session.SetView(ViewSecurity)
	session.SetStatus(StatusReady)
	session.Clear()

	assert.Equal(t, 4, calls)
	assert.Equal(t, ViewSecurity, session.View())
	assert.Equal(t, StatusReady, session.Status())
}

func TestSession_Defaults(t *testing.T) {
	session := NewSession(nil)

	assert.Equal(t, ViewDashboard, session.View())
	assert.Equal(t, StatusBooting, session.Status())
	assert.Empty(t, session.Entries())
}

func TestParseView(t *testing.T) {
	for _, v := range Views {
		got, err := ParseView(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := ParseView("consult")
	assert.Error(t, err)
}

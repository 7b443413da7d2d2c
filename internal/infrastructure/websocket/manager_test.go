package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRoomMembership(t *testing.T) {
	m := NewManager()
	alice := NewClient("alice", nil)
	bob := NewClient("bob", nil)

	m.JoinMatchRoom("match-1", alice)
	m.JoinMatchRoom("match-1", bob)

	assert.True(t, m.InMatchRoom("match-1", "alice"))
	assert.True(t, m.InMatchRoom("match-1", "bob"))
	assert.False(t, m.InMatchRoom("match-2", "alice"))

	m.SendToMatchRoom("match-1", []byte("hello"))
	assert.Equal(t, []byte("hello"), <-alice.Send)
	assert.Equal(t, []byte("hello"), <-bob.Send)

	m.LeaveMatchRoom("match-1", alice)
	assert.False(t, m.InMatchRoom("match-1", "alice"))

	m.SendToMatchRoom("match-1", []byte("again"))
	assert.Equal(t, []byte("again"), <-bob.Send)
	assert.Empty(t, alice.Send)
}

func TestBroadcastToMatchRoomExcept(t *testing.T) {
	m := NewManager()
	alice := NewClient("alice", nil)
	bob := NewClient("bob", nil)

	m.JoinMatchRoom("match-1", alice)
	m.JoinMatchRoom("match-1", bob)

	m.BroadcastToMatchRoomExcept("match-1", "alice", NewEvent(EventTypeTyping, "match-1", nil))

	assert.Empty(t, alice.Send)
	require.Len(t, bob.Send, 1)
	frame := <-bob.Send
	assert.Contains(t, string(frame), EventTypeTyping)
}

func TestJoinMatchRequiresParticipation(t *testing.T) {
	m := NewManager()
	m.CanJoinMatch = func(userID, matchID string) bool {
		return userID == "alice" && matchID == "match-1"
	}

	alice := NewClient("alice", nil)
	mallory := NewClient("mallory", nil)

	m.HandleClientEvent(alice, []byte(`{"type":"join_match","match_id":"match-1"}`))
	assert.True(t, m.InMatchRoom("match-1", "alice"))

	m.HandleClientEvent(mallory, []byte(`{"type":"join_match","match_id":"match-1"}`))
	assert.False(t, m.InMatchRoom("match-1", "mallory"))

	require.Len(t, mallory.Send, 1)
	frame := <-mallory.Send
	assert.Contains(t, string(frame), EventTypeError)
}

func TestRegisterAndReplaceConnection(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	first := NewClient("alice", nil)
	m.Register <- first
	require.Eventually(t, func() bool { return m.IsOnline("alice") }, time.Second, 5*time.Millisecond)

	m.JoinMatchRoom("match-1", first)

	// A reconnect replaces the old client and clears its room memberships.
	second := NewClient("alice", nil)
	m.Register <- second
	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		return m.clients["alice"] == second
	}, time.Second, 5*time.Millisecond)

	assert.False(t, m.InMatchRoom("match-1", "alice"))

	// Old client's channel was closed on replacement.
	_, open := <-first.Send
	assert.False(t, open)

	m.Unregister <- second
	require.Eventually(t, func() bool { return !m.IsOnline("alice") }, time.Second, 5*time.Millisecond)
}

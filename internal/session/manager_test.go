package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/tiltball-server/internal/game"
)

func TestManager_CreateAndFind(t *testing.T) {
	m := NewManager(0)
	client := mockClient("client1")

	s, err := m.Create(game.NewPlayer(game.SizeSmall, game.ModeFree), client, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, m.Count())
	assert.Same(t, s, m.Get(s.ID))
	assert.Same(t, s, m.FindByClient(client.ID))
	assert.Nil(t, m.FindByClient("someone-else"))
}

func TestManager_OneSessionPerClient(t *testing.T) {
	m := NewManager(0)
	client := mockClient("client1")

	_, err := m.Create(game.NewPlayer(game.SizeSmall, game.ModeFree), client, Options{})
	require.NoError(t, err)

	_, err = m.Create(game.NewPlayer(game.SizeLarge, game.ModeFree), client, Options{})
	assert.ErrorIs(t, err, ErrSessionExists)
}

func TestManager_Limit(t *testing.T) {
	m := NewManager(2)

	for _, id := range []string{"c1", "c2"} {
		_, err := m.Create(game.NewPlayer(game.SizeSmall, game.ModeFree), mockClient(id), Options{})
		require.NoError(t, err)
	}

	_, err := m.Create(game.NewPlayer(game.SizeSmall, game.ModeFree), mockClient("c3"), Options{})
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestManager_RemoveStopsSession(t *testing.T) {
	m := NewManager(0)
	client := mockClient("client1")

	s, err := m.Create(game.NewPlayer(game.SizeSmall, game.ModeFree), client, Options{TickRate: testTickRate})
	require.NoError(t, err)
	require.True(t, s.Start())

	m.Remove(s.ID)

	assert.Equal(t, 0, m.Count())
	assert.Nil(t, m.Get(s.ID))
	assert.Nil(t, m.FindByClient(client.ID))
	assert.Equal(t, game.StateEnded, s.SessionState())

	// removing again is a no-op
	m.Remove(s.ID)
}

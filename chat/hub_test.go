package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) []Event {
	var events []Event
	for {
		select {
		case e := <-c.send:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestRoomName(t *testing.T) {
	assert.Equal(t, "booking_42", RoomName(42))
}

func TestHubJoinBroadcast(t *testing.T) {
	hub := NewHub()
	a := NewClient("a", 1)
	b := NewClient("b", 2)
	outsider := NewClient("c", 3)

	room := RoomName(1)
	hub.Join(room, a)
	hub.Join(room, b)
	hub.Join(RoomName(2), outsider)
	assert.Equal(t, 2, hub.RoomSize(room))

	hub.Broadcast(room, Event{Event: "new_message", Data: "hi"})

	for _, c := range []*Client{a, b} {
		events := drain(c)
		require.Len(t, events, 1)
		assert.Equal(t, "new_message", events[0].Event)
		assert.Equal(t, "hi", events[0].Data)
	}
	assert.Empty(t, drain(outsider))
}

func TestHubJoinIdempotent(t *testing.T) {
	hub := NewHub()
	a := NewClient("a", 1)
	room := RoomName(1)

	hub.Join(room, a)
	hub.Join(room, a)
	assert.Equal(t, 1, hub.RoomSize(room))

	hub.Broadcast(room, Event{Event: "ping"})
	assert.Len(t, drain(a), 1)
}

func TestHubLeave(t *testing.T) {
	hub := NewHub()
	a := NewClient("a", 1)
	b := NewClient("b", 2)
	room := RoomName(1)

	hub.Join(room, a)
	hub.Join(room, b)
	hub.Leave(room, a)
	assert.Equal(t, 1, hub.RoomSize(room))

	hub.Broadcast(room, Event{Event: "new_message"})
	assert.Empty(t, drain(a))
	assert.Len(t, drain(b), 1)

	// leaving a room twice, or a room never joined, is harmless
	hub.Leave(room, a)
	hub.Leave("booking_999", a)
}

func TestHubLeaveAll(t *testing.T) {
	hub := NewHub()
	a := NewClient("a", 1)
	b := NewClient("b", 2)

	hub.Join(RoomName(1), a)
	hub.Join(RoomName(2), a)
	hub.Join(RoomName(1), b)

	hub.LeaveAll(a)
	assert.Equal(t, 1, hub.RoomSize(RoomName(1)))
	assert.Equal(t, 0, hub.RoomSize(RoomName(2)))

	hub.Broadcast(RoomName(1), Event{Event: "new_message"})
	assert.Empty(t, drain(a))
	assert.Len(t, drain(b), 1)
}

func TestClientPushDropsWhenFull(t *testing.T) {
	c := NewClient("a", 1)
	for i := 0; i < sendBuffer+10; i++ {
		c.push(Event{Event: "new_message"})
	}
	assert.Len(t, drain(c), sendBuffer)
}

func TestClientAuthenticated(t *testing.T) {
	assert.False(t, NewClient("a", 0).Authenticated())
	assert.True(t, NewClient("b", 7).Authenticated())
}

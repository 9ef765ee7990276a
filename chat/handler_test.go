package chat

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
)

// chatFixture seeds a client, a runner and one accepted booking between
// them, directly against an in-memory database.
type chatFixture struct {
	hub     *Hub
	client  *models.User
	runner  *models.User
	booking *models.Booking
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{}, &models.Runner{}, &models.Service{},
		&models.Booking{}, &models.ChatMessage{},
	))
	db.DB = gdb

	client := &models.User{Username: "client", Email: "client@example.com", Password: "x", FirstName: "Cleo", LastName: "Client", IsActive: true}
	runner := &models.User{Username: "runner", Email: "runner@example.com", Password: "x", FirstName: "Remy", LastName: "Runner", IsActive: true, Role: models.RoleRunner}
	require.NoError(t, gdb.Create(client).Error)
	require.NoError(t, gdb.Create(runner).Error)

	profile := &models.Runner{UserID: runner.ID, HourlyRate: 20, City: "Austin", IsAvailable: true}
	require.NoError(t, gdb.Create(profile).Error)

	service := &models.Service{Name: "Grocery Shopping", Category: "home", IsActive: true}
	require.NoError(t, gdb.Create(service).Error)

	booking := &models.Booking{
		UserID:         client.ID,
		RunnerID:       profile.ID,
		ServiceID:      service.ID,
		Title:          "Grocery run",
		ScheduledDate:  time.Now().Add(24 * time.Hour),
		EstimatedHours: 2,
		HourlyRate:     20,
		TotalAmount:    40,
		Status:         models.StatusAccepted,
	}
	require.NoError(t, gdb.Create(booking).Error)

	return &chatFixture{hub: NewHub(), client: client, runner: runner, booking: booking}
}

func send(hub *Hub, c *Client, event string, payload chatPayload) {
	data, _ := json.Marshal(payload)
	dispatch(hub, c, inboundEvent{Event: event, Data: data})
}

func TestDispatchRequiresAuthentication(t *testing.T) {
	f := newChatFixture(t)
	anon := NewClient("anon", 0)

	send(f.hub, anon, "join_chat", chatPayload{BookingID: f.booking.ID})
	events := drain(anon)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Event)
	assert.Equal(t, 0, f.hub.RoomSize(RoomName(f.booking.ID)))

	// leave_chat is tolerated without identity
	send(f.hub, anon, "leave_chat", chatPayload{BookingID: f.booking.ID})
	events = drain(anon)
	require.Len(t, events, 1)
	assert.Equal(t, "left_chat", events[0].Event)
}

func TestDispatchRejectsUnknownEvent(t *testing.T) {
	f := newChatFixture(t)
	c := NewClient("c", f.client.ID)

	send(f.hub, c, "dance", chatPayload{})
	events := drain(c)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Event)
}

func TestJoinChatParticipantsOnly(t *testing.T) {
	f := newChatFixture(t)
	room := RoomName(f.booking.ID)

	member := NewClient("member", f.client.ID)
	send(f.hub, member, "join_chat", chatPayload{BookingID: f.booking.ID})
	events := drain(member)
	require.Len(t, events, 2)
	assert.Equal(t, "chat_history", events[0].Event)
	assert.Equal(t, "joined_chat", events[1].Event)
	assert.Equal(t, 1, f.hub.RoomSize(room))

	outsider := NewClient("outsider", 999)
	send(f.hub, outsider, "join_chat", chatPayload{BookingID: f.booking.ID})
	events = drain(outsider)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Event)
	assert.Equal(t, 1, f.hub.RoomSize(room))

	// a missing booking is an error, not a silent no-op
	send(f.hub, member, "join_chat", chatPayload{BookingID: 999})
	events = drain(member)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Event)
}

func TestSendMessagePersistsAndBroadcasts(t *testing.T) {
	f := newChatFixture(t)
	room := RoomName(f.booking.ID)

	sender := NewClient("sender", f.client.ID)
	listener := NewClient("listener", f.runner.ID)
	f.hub.Join(room, sender)
	f.hub.Join(room, listener)

	send(f.hub, sender, "send_message", chatPayload{BookingID: f.booking.ID, Message: "on my way"})

	events := drain(listener)
	require.Len(t, events, 1)
	assert.Equal(t, "new_message", events[0].Event)
	payload := events[0].Data.(map[string]interface{})
	assert.Equal(t, "on my way", payload["message"])
	assert.Equal(t, "Cleo Client", payload["sender_name"])

	// the sender gets the broadcast too
	assert.Len(t, drain(sender), 1)

	var stored models.ChatMessage
	require.NoError(t, db.DB.First(&stored).Error)
	assert.Equal(t, f.client.ID, stored.SenderID)
	assert.Equal(t, f.runner.ID, stored.ReceiverID)
	assert.False(t, stored.IsRead)
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	f := newChatFixture(t)
	c := NewClient("c", f.client.ID)

	send(f.hub, c, "send_message", chatPayload{BookingID: f.booking.ID})
	events := drain(c)
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Event)

	var count int64
	db.DB.Model(&models.ChatMessage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMarkMessagesReadSkipsOwnMessages(t *testing.T) {
	f := newChatFixture(t)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.DB.Create(&models.ChatMessage{
			BookingID:  f.booking.ID,
			SenderID:   f.runner.ID,
			ReceiverID: f.client.ID,
			Message:    fmt.Sprintf("update %d", i),
		}).Error)
	}
	require.NoError(t, db.DB.Create(&models.ChatMessage{
		BookingID:  f.booking.ID,
		SenderID:   f.client.ID,
		ReceiverID: f.runner.ID,
		Message:    "thanks",
	}).Error)

	c := NewClient("c", f.client.ID)
	send(f.hub, c, "mark_messages_read", chatPayload{BookingID: f.booking.ID})
	events := drain(c)
	require.Len(t, events, 1)
	assert.Equal(t, "messages_marked_read", events[0].Event)

	var read, unread int64
	db.DB.Model(&models.ChatMessage{}).Where("is_read = ?", true).Count(&read)
	db.DB.Model(&models.ChatMessage{}).Where("is_read = ?", false).Count(&unread)
	assert.Equal(t, int64(2), read)
	assert.Equal(t, int64(1), unread)
}

func TestJoinChatHistoryIsChronological(t *testing.T) {
	f := newChatFixture(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		msg := &models.ChatMessage{
			BookingID:  f.booking.ID,
			SenderID:   f.runner.ID,
			ReceiverID: f.client.ID,
			Message:    fmt.Sprintf("msg %d", i),
		}
		msg.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.DB.Create(msg).Error)
	}

	c := NewClient("c", f.client.ID)
	send(f.hub, c, "join_chat", chatPayload{BookingID: f.booking.ID})
	events := drain(c)
	require.Len(t, events, 2)

	history := events[0].Data.(map[string]interface{})["messages"].([]historyMessage)
	require.Len(t, history, 3)
	assert.Equal(t, "msg 0", history[0].Message)
	assert.Equal(t, "msg 2", history[2].Message)
	assert.True(t, history[0].CreatedAt.Before(history[1].CreatedAt))
}

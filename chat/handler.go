package chat

import (
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/utils"
)

type inboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type chatPayload struct {
	BookingID uint   `json:"booking_id"`
	Message   string `json:"message"`
}

type historyMessage struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

func errorEvent(message string) Event {
	return Event{Event: "error", Data: map[string]string{"message": message}}
}

// Handler upgrades the connection and runs the session loop. Identity binds
// once here, from the token query parameter; an invalid token leaves the
// connection open but unauthenticated.
func Handler(hub *Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		client := NewClient(uuid.NewString(), 0)

		if raw := conn.Query("token"); raw != "" {
			if claims, err := utils.ParseToken(raw); err == nil {
				if userID, err := utils.UserIDFromClaims(claims); err == nil {
					client.UserID = userID
				}
			}
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for ev := range client.Events() {
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			}
		}()

		if client.Authenticated() {
			client.push(Event{Event: "connected", Data: map[string]interface{}{
				"status":  "authenticated",
				"user_id": client.UserID,
			}})
		} else {
			client.push(errorEvent("Authentication required"))
		}

		for {
			var in inboundEvent
			if err := conn.ReadJSON(&in); err != nil {
				break
			}
			dispatch(hub, client, in)
		}

		hub.LeaveAll(client)
		client.close()
		<-done
	}
}

func dispatch(hub *Hub, client *Client, in inboundEvent) {
	var payload chatPayload
	if len(in.Data) > 0 {
		if err := json.Unmarshal(in.Data, &payload); err != nil {
			client.push(errorEvent("Invalid event payload"))
			return
		}
	}

	// leave_chat works without identity; everything else needs it.
	if in.Event == "leave_chat" {
		leaveChat(hub, client, payload)
		return
	}
	if !client.Authenticated() {
		client.push(errorEvent("Authentication required"))
		return
	}

	switch in.Event {
	case "join_chat":
		joinChat(hub, client, payload)
	case "send_message":
		sendMessage(hub, client, payload)
	case "mark_messages_read":
		markMessagesRead(client, payload)
	default:
		client.push(errorEvent("Unknown event"))
	}
}

// loadBooking fetches the booking and checks the caller is a participant.
func loadBooking(client *Client, bookingID uint) (*models.Booking, bool) {
	if bookingID == 0 {
		client.push(errorEvent("Booking ID required"))
		return nil, false
	}
	var booking models.Booking
	if err := db.DB.Preload("Runner").First(&booking, bookingID).Error; err != nil {
		client.push(errorEvent("Booking not found"))
		return nil, false
	}
	if booking.UserID != client.UserID && booking.Runner.UserID != client.UserID {
		client.push(errorEvent("Access denied"))
		return nil, false
	}
	return &booking, true
}

func joinChat(hub *Hub, client *Client, payload chatPayload) {
	booking, ok := loadBooking(client, payload.BookingID)
	if !ok {
		return
	}

	room := RoomName(booking.ID)
	hub.Join(room, client)

	var messages []models.ChatMessage
	if err := db.DB.Preload("Sender").
		Where("booking_id = ?", booking.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&messages).Error; err != nil {
		log.Error().Err(err).Uint("booking", booking.ID).Msg("failed to load chat history")
		client.push(errorEvent("Failed to load chat history"))
		return
	}

	// newest-first from the query, reversed for display
	history := make([]historyMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		history = append(history, historyMessage{
			ID:         msg.ID,
			SenderID:   msg.SenderID,
			SenderName: msg.Sender.FullName(),
			Message:    msg.Message,
			CreatedAt:  msg.CreatedAt,
			IsRead:     msg.IsRead,
		})
	}

	client.push(Event{Event: "chat_history", Data: map[string]interface{}{
		"messages": history,
	}})
	client.push(Event{Event: "joined_chat", Data: map[string]interface{}{
		"booking_id": booking.ID,
		"room":       room,
	}})
}

func leaveChat(hub *Hub, client *Client, payload chatPayload) {
	if payload.BookingID == 0 {
		return
	}
	hub.Leave(RoomName(payload.BookingID), client)
	client.push(Event{Event: "left_chat", Data: map[string]interface{}{
		"booking_id": payload.BookingID,
	}})
}

func sendMessage(hub *Hub, client *Client, payload chatPayload) {
	if payload.Message == "" {
		client.push(errorEvent("Booking ID and message are required"))
		return
	}
	booking, ok := loadBooking(client, payload.BookingID)
	if !ok {
		return
	}

	// The receiver is the other booking participant.
	receiverID := booking.Runner.UserID
	if client.UserID == receiverID {
		receiverID = booking.UserID
	}

	message := models.ChatMessage{
		BookingID:  booking.ID,
		SenderID:   client.UserID,
		ReceiverID: receiverID,
		Message:    payload.Message,
	}
	if err := db.DB.Create(&message).Error; err != nil {
		log.Error().Err(err).Uint("booking", booking.ID).Msg("failed to persist chat message")
		client.push(errorEvent("Failed to send message"))
		return
	}

	var sender models.User
	db.DB.First(&sender, client.UserID)

	hub.Broadcast(RoomName(booking.ID), Event{Event: "new_message", Data: map[string]interface{}{
		"id":          message.ID,
		"booking_id":  booking.ID,
		"sender_id":   client.UserID,
		"sender_name": sender.FullName(),
		"message":     payload.Message,
		"created_at":  message.CreatedAt,
	}})
}

func markMessagesRead(client *Client, payload chatPayload) {
	booking, ok := loadBooking(client, payload.BookingID)
	if !ok {
		return
	}

	if err := db.DB.Model(&models.ChatMessage{}).
		Where("booking_id = ? AND sender_id != ?", booking.ID, client.UserID).
		Update("is_read", true).Error; err != nil {
		log.Error().Err(err).Uint("booking", booking.ID).Msg("failed to mark messages read")
		client.push(errorEvent("Failed to mark messages read"))
		return
	}

	client.push(Event{Event: "messages_marked_read", Data: map[string]interface{}{
		"booking_id": booking.ID,
	}})
}

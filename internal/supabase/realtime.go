package supabase

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// RealtimeClient publishes lifecycle events for the frontend to pick up over
// Supabase Realtime channels.
type RealtimeClient struct {
	client *Client
}

func NewRealtimeClient(client *Client) *RealtimeClient {
	return &RealtimeClient{client: client}
}

type GenerationEventPayload struct {
	GenerationID string `json:"generation_id"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
}

type OrderEventPayload struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (r *RealtimeClient) PublishGenerationEvent(generationID uuid.UUID, status string) error {
	payload := GenerationEventPayload{
		GenerationID: generationID.String(),
		Status:       status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	return r.publish("generations:"+generationID.String(), "generation_update", payload)
}

func (r *RealtimeClient) PublishOrderEvent(orderID uuid.UUID, status string) error {
	payload := OrderEventPayload{
		OrderID:   orderID.String(),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return r.publish("orders:"+orderID.String(), "order_update", payload)
}

// publish logs the event for now. The supabase-go client does not expose
// channel broadcasting yet; the frontend falls back to polling the status
// endpoints. TODO: switch to realtime-go broadcast once the client supports it.
func (r *RealtimeClient) publish(channel, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	log.Printf("[realtime] channel=%s event=%s payload=%s", channel, event, data)
	return nil
}

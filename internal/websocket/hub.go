// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package websocket

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/taskpulse/internal/config"
	"github.com/tomtom215/taskpulse/internal/logging"
	"github.com/tomtom215/taskpulse/internal/metrics"
	"github.com/tomtom215/taskpulse/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled indicates the parent context was canceled.
	// This is the normal graceful shutdown path (e.g., SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Broadcast triggers, used as metric labels.
const (
	triggerSubscribe = "subscribe"
	triggerTimer     = "timer"
	triggerManual    = "manual"
)

const (
	defaultPerformanceInterval = 30 * time.Second
	defaultSendBuffer          = 256
)

// Store is the task persistence the hub needs. GetTask and UpdateTaskStatus
// return database.ErrTaskNotFound (or a nil task) when the task is absent.
type Store interface {
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status models.TaskStatus, completedAt *time.Time, updatedAt time.Time) (*models.Task, error)
	InsertTaskActivity(ctx context.Context, taskID, userID int64, action string, createdAt time.Time) (*models.TaskActivity, error)
}

// PerformanceSource produces team performance snapshots.
type PerformanceSource interface {
	Compute(ctx context.Context) (*models.TeamPerformanceSnapshot, error)
}

// Hub owns the live connections: the pending bucket of connections that
// have not completed the handshake, the registry of authenticated
// connections, and the team performance subscription set.
type Hub struct {
	store Store
	perf  PerformanceSource

	interval     time.Duration
	sendBuffer   int
	messageRate  rate.Limit
	messageBurst int
	now          func() time.Time

	mu          sync.RWMutex
	pending     map[string]*Client
	clients     map[string]*Client
	subscribers map[string]struct{}

	// perfMu serializes snapshot computation so broadcasts go out in order.
	perfMu sync.Mutex
}

// NewHub creates a hub. A nil cfg uses defaults.
func NewHub(store Store, perf PerformanceSource, cfg *config.WebSocketConfig) *Hub {
	h := &Hub{
		store:        store,
		perf:         perf,
		interval:     defaultPerformanceInterval,
		sendBuffer:   defaultSendBuffer,
		messageRate:  rate.Inf,
		messageBurst: 1,
		now:          time.Now,
		pending:      make(map[string]*Client),
		clients:      make(map[string]*Client),
		subscribers:  make(map[string]struct{}),
	}

	if cfg != nil {
		if cfg.PerformanceInterval > 0 {
			h.interval = cfg.PerformanceInterval
		}
		if cfg.SendBufferSize > 0 {
			h.sendBuffer = cfg.SendBufferSize
		}
		if cfg.MessageRate > 0 {
			h.messageRate = rate.Limit(cfg.MessageRate)
			h.messageBurst = max(cfg.MessageBurst, 1)
		}
	}

	return h
}

// RunWithContext runs the periodic team performance broadcast until ctx is
// canceled, then closes every connection and returns ctx.Err().
// Ticks are skipped while nobody is subscribed.
func (h *Hub) RunWithContext(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	logging.Info().
		Str("component", "websocket-hub").
		Dur("performance_interval", h.interval).
		Msg("websocket hub started")

	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case <-ticker.C:
			if h.SubscriberCount() == 0 {
				continue
			}
			if _, err := h.broadcastTeamPerformance(ctx, triggerTimer); err != nil {
				logging.Error().Err(err).Msg("periodic team performance broadcast failed")
			}
		}
	}
}

// logGracefulShutdown closes all clients and logs the shutdown with
// structured fields. ctx.Err() is not logged as an error since
// cancellation is the expected path.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount() + h.PendingCount()

	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

// getShutdownReason determines the shutdown reason from the context error.
func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// TriggerTeamPerformance recomputes the leaderboard and sends it to every
// subscriber. It returns the number of subscribers the snapshot was queued for.
func (h *Hub) TriggerTeamPerformance(ctx context.Context) (int, error) {
	return h.broadcastTeamPerformance(ctx, triggerManual)
}

func (h *Hub) broadcastTeamPerformance(ctx context.Context, trigger string) (int, error) {
	h.perfMu.Lock()
	defer h.perfMu.Unlock()

	if h.SubscriberCount() == 0 {
		return 0, nil
	}

	snapshot, err := h.perf.Compute(ctx)
	if err != nil {
		metrics.RecordWSError("performance_compute")
		return 0, fmt.Errorf("failed to compute team performance: %w", err)
	}

	payload, err := MarshalMessage(TeamPerformanceMessage{
		Type:        MessageTypeTeamPerformance,
		Members:     snapshot.Members,
		GeneratedAt: snapshot.GeneratedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode team performance: %w", err)
	}

	sent := 0
	for _, c := range h.subscribedClients() {
		if c.enqueue(MessageTypeTeamPerformance, payload) {
			sent++
		}
	}
	metrics.RecordPerformanceBroadcast(trigger)

	logging.Ctx(ctx).Debug().
		Str("trigger", trigger).
		Int("members", len(snapshot.Members)).
		Int("recipients", sent).
		Msg("broadcast team_performance")
	return sent, nil
}

// sendTo encodes msg and queues it for a single client.
func (h *Hub) sendTo(c *Client, msgType string, msg interface{}) bool {
	payload, err := MarshalMessage(msg)
	if err != nil {
		logging.Ctx(c.ctx).Error().Err(err).Str("message_type", msgType).Msg("failed to encode message")
		return false
	}
	return c.enqueue(msgType, payload)
}

// broadcastExcept queues msg for every authenticated client other than
// sender and returns how many accepted it.
func (h *Hub) broadcastExcept(sender *Client, msgType string, msg interface{}) int {
	payload, err := MarshalMessage(msg)
	if err != nil {
		logging.Error().Err(err).Str("message_type", msgType).Msg("failed to encode broadcast")
		return 0
	}

	sent := 0
	for _, c := range h.authenticatedClients() {
		if c == sender {
			continue
		}
		if c.enqueue(msgType, payload) {
			sent++
		}
	}
	return sent
}

// authenticatedClients returns a snapshot of the registry in connection ID order.
func (h *Hub) authenticatedClients() []*Client {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sortClients(clients)
	return clients
}

// subscribedClients returns the registered clients in the subscription set.
func (h *Hub) subscribedClients() []*Client {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.subscribers))
	for id := range h.subscribers {
		if c, ok := h.clients[id]; ok {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	sortClients(clients)
	return clients
}

func sortClients(clients []*Client) {
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
}

func (h *Hub) addPending(c *Client) {
	h.mu.Lock()
	h.pending[c.id] = c
	h.mu.Unlock()

	h.updateGauges()
}

// authenticate moves a client from the pending bucket into the registry.
// The connected ack is queued before the client becomes visible to
// broadcasts, so it is always the first message the client receives.
// It returns false if the client is no longer pending (hub shut down).
func (h *Hub) authenticate(c *Client) bool {
	ack, err := MarshalMessage(ConnectedMessage{
		Type:    MessageTypeConnected,
		Message: connectedGreeting,
	})
	if err != nil {
		logging.Ctx(c.ctx).Error().Err(err).Msg("failed to encode connected message")
		return false
	}

	h.mu.Lock()
	if _, ok := h.pending[c.id]; !ok {
		h.mu.Unlock()
		return false
	}
	delete(h.pending, c.id)
	c.enqueue(MessageTypeConnected, ack)
	h.clients[c.id] = c
	total := len(h.clients)
	h.mu.Unlock()

	h.updateGauges()
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
	return true
}

// subscribe adds a registered client to the performance subscription set.
func (h *Hub) subscribe(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		h.subscribers[c.id] = struct{}{}
	}
	h.mu.Unlock()

	h.updateGauges()
}

// unregister removes a client from the pending bucket, the registry and the
// subscription set in one step, then closes its send channel.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, wasRegistered := h.clients[c.id]
	delete(h.pending, c.id)
	delete(h.clients, c.id)
	delete(h.subscribers, c.id)
	total := len(h.clients)
	h.mu.Unlock()

	c.close()
	h.updateGauges()

	if wasRegistered {
		logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
	}
}

// closeAllClients closes every pending and registered client.
// Called during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	pending := make([]*Client, 0, len(h.pending))
	for _, c := range h.pending {
		pending = append(pending, c)
	}
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.pending = make(map[string]*Client)
	h.clients = make(map[string]*Client)
	h.subscribers = make(map[string]struct{})
	h.mu.Unlock()

	// Pending clients have no write pump to send the close frame.
	for _, c := range pending {
		c.close()
		_ = c.conn.Close()
	}
	for _, c := range clients {
		c.close()
	}

	h.updateGauges()
	logging.Info().Msg("closed all websocket clients during shutdown")
}

func (h *Hub) updateGauges() {
	h.mu.RLock()
	authenticated, pending, subs := len(h.clients), len(h.pending), len(h.subscribers)
	h.mu.RUnlock()

	metrics.UpdateWSGauges(authenticated, pending, subs)
}

// GetClientCount returns the number of authenticated clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PendingCount returns the number of connections awaiting a handshake.
func (h *Hub) PendingCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.pending)
}

// SubscriberCount returns the size of the team performance subscription set.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// IsSubscribed reports whether a connection ID is in the subscription set.
func (h *Hub) IsSubscribed(connectionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.subscribers[connectionID]
	return ok
}

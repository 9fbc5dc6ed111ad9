// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package websocket

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/taskpulse/internal/database"
	"github.com/tomtom215/taskpulse/internal/logging"
	"github.com/tomtom215/taskpulse/internal/models"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

const readTimeout = 2 * time.Second

// fakeStore is an in-memory Store with injectable failures.
type fakeStore struct {
	mu          sync.Mutex
	tasks       map[int64]*models.Task
	activities  []models.TaskActivity
	updateCalls int

	getErr    error
	updateErr error
	insertErr error

	lastCompletedAt *time.Time
	lastUpdatedAt   time.Time
}

func newFakeStore(tasks ...*models.Task) *fakeStore {
	s := &fakeStore{tasks: make(map[int64]*models.Task)}
	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
	return s
}

func (s *fakeStore) GetTask(_ context.Context, id int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, database.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeStore) UpdateTaskStatus(_ context.Context, id int64, status models.TaskStatus, completedAt *time.Time, updatedAt time.Time) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateCalls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	t, ok := s.tasks[id]
	if !ok {
		return nil, database.ErrTaskNotFound
	}
	t.Status = status
	t.CompletedAt = completedAt
	t.UpdatedAt = updatedAt
	s.lastCompletedAt = completedAt
	s.lastUpdatedAt = updatedAt
	cp := *t
	return &cp, nil
}

func (s *fakeStore) InsertTaskActivity(_ context.Context, taskID, userID int64, action string, createdAt time.Time) (*models.TaskActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return nil, s.insertErr
	}
	a := models.TaskActivity{
		ID:        int64(len(s.activities) + 1),
		TaskID:    taskID,
		UserID:    userID,
		Action:    action,
		CreatedAt: createdAt,
	}
	s.activities = append(s.activities, a)
	return &a, nil
}

func (s *fakeStore) status(id int64) models.TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id].Status
}

func (s *fakeStore) activityCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activities)
}

func (s *fakeStore) updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCalls
}

// fakePerformance returns a fixed snapshot and counts computations.
type fakePerformance struct {
	mu      sync.Mutex
	calls   int
	members []models.TeamMemberPerformance
	err     error
}

func (f *fakePerformance) Compute(context.Context) (*models.TeamPerformanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	members := make([]models.TeamMemberPerformance, len(f.members))
	copy(members, f.members)
	return &models.TeamPerformanceSnapshot{Members: members, GeneratedAt: time.Now().UTC()}, nil
}

func (f *fakePerformance) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testMembers() []models.TeamMemberPerformance {
	return []models.TeamMemberPerformance{
		{ID: 2, Username: "asmith", FullName: "Alex Smith", Role: models.RoleTeamMember,
			Metrics: models.PerformanceMetrics{TasksCompleted: 5, OnTimeCompletion: 100, DocumentComments: 3, CollaborationScore: 2, TotalScore: 37}},
		{ID: 3, Username: "jdoe", FullName: "Jordan Doe", Role: models.RoleTeamMember},
	}
}

func newTask(id int64, status models.TaskStatus) *models.Task {
	now := time.Now().UTC()
	return &models.Task{
		ID:        id,
		Title:     "Test task",
		Status:    status,
		Priority:  models.TaskPriorityMedium,
		CreatedBy: 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// newTestServer serves the hub on an httptest server.
func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn).Start()
	}))
	t.Cleanup(server.Close)
	return server
}

// dialWebSocket establishes a WebSocket connection to the test server
func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// connect dials and completes the handshake.
func connect(t *testing.T, server *httptest.Server, userID int64, username string) *websocket.Conn {
	t.Helper()
	conn := dialWebSocket(t, server)
	writeJSON(t, conn, Handshake{UserID: userID, Username: username})
	msg := readMessage(t, conn)
	if msg.Type != MessageTypeConnected {
		t.Fatalf("expected %q after handshake, got %q", MessageTypeConnected, msg.Type)
	}
	if msg.Message == "" {
		t.Error("connected message should not be empty")
	}
	return conn
}

func writeJSON(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	writeRaw(t, conn, string(data))
}

func writeRaw(t *testing.T, conn *websocket.Conn, s string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(s)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// received is the union of every outbound message shape.
type received struct {
	Type     string                         `json:"type"`
	Code     string                         `json:"code"`
	Message  string                         `json:"message"`
	Task     *models.Task                   `json:"task"`
	Activity *ActivityPayload               `json:"activity"`
	Members  []models.TeamMemberPerformance `json:"members"`
}

func readMessage(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg received
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return msg
}

// readUntil reads messages until one of the given types arrives.
func readUntil(t *testing.T, conn *websocket.Conn, types ...string) received {
	t.Helper()
	for {
		msg := readMessage(t, conn)
		for _, typ := range types {
			if msg.Type == typ {
				return msg
			}
		}
	}
}

func expectError(t *testing.T, conn *websocket.Conn, code string) received {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != MessageTypeError {
		t.Fatalf("expected error message, got %q", msg.Type)
	}
	if msg.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, msg.Code, msg.Message)
	}
	return msg
}

// waitFor polls cond until it holds or the timeout expires.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(readTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func taskUpdate(taskID int64, status models.TaskStatus) map[string]interface{} {
	return map[string]interface{}{
		"type":   MessageTypeTaskUpdate,
		"taskId": taskID,
		"changes": map[string]interface{}{
			"status": status,
		},
	}
}

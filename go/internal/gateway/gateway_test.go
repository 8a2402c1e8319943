package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pickpool/pickpool/go/internal/models"
)

func newTestManager(t *testing.T) (*ConnectionManager, *httptest.Server) {
	t.Helper()

	cm := NewConnectionManager(DefaultConnectionConfig())
	ctx, cancel := context.WithCancel(context.Background())
	go cm.Start(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			userID = "anonymous"
		}
		if err := cm.UpgradeConnection(w, r, userID); err != nil {
			t.Errorf("upgrade failed: %v", err)
		}
	}))

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return cm, srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	if userID != "" {
		wsURL += "?user_id=" + url.QueryEscape(userID)
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) PoolEvent {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var event PoolEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	return event
}

func TestBroadcastReachesAllClients(t *testing.T) {
	cm, srv := newTestManager(t)

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")

	cm.Broadcast(&PoolEvent{
		ID:        "evt-1",
		Type:      EventTypeStandingsUpdated,
		Timestamp: time.Now(),
		Data:      json.RawMessage(`{"season":2025,"week":12}`),
	})

	for _, conn := range []*websocket.Conn{alice, bob} {
		event := readEvent(t, conn)
		if event.Type != EventTypeStandingsUpdated {
			t.Errorf("event type = %s, want %s", event.Type, EventTypeStandingsUpdated)
		}
		if event.ID != "evt-1" {
			t.Errorf("event ID = %s, want evt-1", event.ID)
		}
	}
}

func TestBroadcastToUserFiltersConnections(t *testing.T) {
	cm, srv := newTestManager(t)

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")

	cm.BroadcastToUser("alice", &PoolEvent{
		ID:   "evt-2",
		Type: EventTypeGameFinalized,
		Data: json.RawMessage(`{}`),
	})

	event := readEvent(t, alice)
	if event.ID != "evt-2" {
		t.Errorf("event ID = %s, want evt-2", event.ID)
	}

	bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := bob.ReadMessage(); err == nil {
		t.Error("bob received an event targeted at alice")
	}
}

func TestConnectionStatsTrackClients(t *testing.T) {
	cm, srv := newTestManager(t)

	dial(t, srv, "alice")
	dial(t, srv, "alice")
	dial(t, srv, "bob")

	stats := cm.GetConnectionStats()
	if total := stats["total_connections"].(int); total != 3 {
		t.Errorf("total_connections = %d, want 3", total)
	}
	users := stats["user_connections"].(map[string]int)
	if users["alice"] != 2 || users["bob"] != 1 {
		t.Errorf("user_connections = %v, want alice:2 bob:1", users)
	}
}

type fakeStateProvider struct {
	standings   []models.StandingsRow
	games       []models.Game
	currentWeek models.WeekRef
}

func (f *fakeStateProvider) GetStandings(ctx context.Context, week models.WeekRef) ([]models.StandingsRow, error) {
	return f.standings, nil
}

func (f *fakeStateProvider) GetGames(ctx context.Context, week models.WeekRef) ([]models.Game, error) {
	return f.games, nil
}

func (f *fakeStateProvider) GetCurrentWeek(ctx context.Context) (models.WeekRef, error) {
	return f.currentWeek, nil
}

func TestStateHandlerStandings(t *testing.T) {
	provider := &fakeStateProvider{
		standings: []models.StandingsRow{
			{Username: "alice", Rank: 1, CorrectPicks: 3, Winner: true},
			{Username: "bob", Rank: 2, CorrectPicks: 2},
		},
	}
	handler := NewStateHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/pool/standings?season=2025&week=12", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetStandings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rows []models.StandingsRow
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Username != "alice" || !rows[0].Winner {
		t.Errorf("unexpected standings payload: %+v", rows)
	}
}

func TestStateHandlerDefaultsToCurrentWeek(t *testing.T) {
	provider := &fakeStateProvider{currentWeek: models.WeekRef{Season: 2025, Week: 12}}
	handler := NewStateHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/pool/games", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetGames(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var games []models.Game
	if err := json.NewDecoder(rec.Body).Decode(&games); err != nil {
		t.Fatal(err)
	}
	if games == nil {
		t.Error("expected empty array, got null")
	}
}

func TestStateHandlerRejectsBadParams(t *testing.T) {
	handler := NewStateHandler(&fakeStateProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/pool/standings?season=abc&week=12", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetStandings(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

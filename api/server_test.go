package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nstehr/vimy/tower-core/agent"
	"github.com/nstehr/vimy/tower-core/rules"
)

var testIdentity = Identity{Name: "Mega ogudor", Strategy: "AI-trapped-strategy", Version: "1.0"}

func newTestServer(t *testing.T, rps float64, burst int) *Server {
	t.Helper()
	engine, err := rules.NewEngine(rules.CompileDoctrine(rules.DefaultDoctrine()))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewServer(testIdentity, agent.New(testIdentity.Name, engine), rps, burst)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, 0, 0), http.MethodGet, RouteHealth, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"OK"}` {
		t.Errorf("body = %s", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestInfo(t *testing.T) {
	rec := do(t, newTestServer(t, 0, 0), http.MethodGet, RouteInfo, "")
	want := `{"name":"Mega ogudor","strategy":"AI-trapped-strategy","version":"1.0"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestCombat(t *testing.T) {
	body := `{
		"gameId": "abc",
		"turn": 1,
		"playerTower": {"playerId": 1, "hp": 100, "armor": 0, "resources": 200, "level": 1},
		"enemyTowers": [
			{"playerId": 3, "hp": 100, "armor": 50, "level": 3},
			{"playerId": 2, "hp": 20, "armor": 5, "level": 1}
		],
		"previousAttacks": [
			{"playerId": 3, "action": {"type": "attack", "targetId": 1, "troopCount": 30}},
			{"playerId": 2, "action": {"type": "upgrade"}}
		]
	}`
	rec := do(t, newTestServer(t, 0, 0), http.MethodPost, RouteCombat, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	want := `[{"type":"armor","amount":30},{"type":"upgrade"},` +
		`{"type":"attack","targetId":2,"troopCount":25},{"type":"attack","targetId":3,"troopCount":57}]`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s\nwant   %s", got, want)
	}
}

func TestCombat_MissingTower(t *testing.T) {
	rec := do(t, newTestServer(t, 0, 0), http.MethodPost, RouteCombat, `{"turn": 3, "enemyTowers": []}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `[]` {
		t.Errorf("body = %s, want []", got)
	}
}

func TestCombat_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"playerTower": `},
		{"empty body", ``},
		{"wrong type", `{"playerTower": {"resources": "lots"}}`},
		{"negative resources", `{"playerTower": {"playerId": 1, "level": 1, "resources": -5}}`},
	}
	s := newTestServer(t, 0, 0)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, RouteCombat, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestNegotiate(t *testing.T) {
	s := newTestServer(t, 0, 0)

	rec := do(t, s, http.MethodPost, RouteNegotiate, `{"playerTower": {"playerId": 1, "level": 1}, "enemyTowers": []}`)
	if got := strings.TrimSpace(rec.Body.String()); got != `[]` {
		t.Errorf("no enemies: body = %s, want []", got)
	}

	rec = do(t, s, http.MethodPost, RouteNegotiate, `{"playerTower": {"playerId": 1, "level": 1},
		"enemyTowers": [{"playerId": 5, "level": 2, "hp": 40, "armor": 0}]}`)
	if got := strings.TrimSpace(rec.Body.String()); got != `[{"allyId":5}]` {
		t.Errorf("single enemy: body = %s", got)
	}

	rec = do(t, s, http.MethodPost, RouteNegotiate, `{"playerTower": {"playerId": 1, "level": 1},
		"enemyTowers": [{"playerId": 5, "level": 2, "hp": 40, "armor": 0}, {"playerId": 6, "level": 4, "hp": 300, "armor": 10}]}`)
	if got := strings.TrimSpace(rec.Body.String()); got != `[{"allyId":6,"attackTargetId":5}]` {
		t.Errorf("two enemies: body = %s", got)
	}
}

func TestWrongMethod(t *testing.T) {
	rec := do(t, newTestServer(t, 0, 0), http.MethodGet, RouteCombat, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestServer(t, 0, 0), http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestThrottle(t *testing.T) {
	s := newTestServer(t, 0.001, 1)
	if rec := do(t, s, http.MethodGet, RouteHealth, ""); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, RouteHealth, ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, RouteHealth, nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	newTestServer(t, 0, 0).ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/clock"
	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/lib/realtime"
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "local"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"https://admin.example.com"},
			},
			Ordering: config.DefaultOrderingConfig(),
		},
		Logger:   &logger,
		Realtime: realtime.NewHub(&logger),
	}
}

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

type greetPayload struct {
	Name string `json:"name" validate:"required"`
}

func (p *greetPayload) Validate() error {
	return validation.Struct(p)
}

func TestHandleBindsIntoFreshPayload(t *testing.T) {
	s := testServer()
	e := newEcho(s)

	e.POST("/greet", Handle(NewHandler(s), func(c echo.Context, p *greetPayload) (map[string]string, error) {
		return map[string]string{"hello": p.Name}, nil
	}, http.StatusCreated, &greetPayload{}))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/greet", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := post(`{"name":"ada"}`); rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), "ada") {
		t.Fatalf("expected 201 greeting, got %d %s", rec.Code, rec.Body.String())
	}

	// A payload left over from the previous request would satisfy
	// validation here.
	rec := post(`{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"field":"name"`) {
		t.Fatalf("expected field error for name, got %s", rec.Body.String())
	}
}

func TestAdminHandlersRequireAdminContext(t *testing.T) {
	s := testServer()
	e := newEcho(s)

	h := NewRealtimeHandler(s, service.NewRealtimeService(realtime.NewTickets("secret", clock.NewSystem())))
	e.POST("/ticket", Handle(h.Handler, h.Ticket, http.StatusOK, &model.EmptyPayload{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ticket", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin context, got %d", rec.Code)
	}
}

func TestEmailPreview(t *testing.T) {
	s := testServer()
	e := newEcho(s)

	h := NewEmailHandler(s)
	e.GET("/dev/emails/:template", HandleHTML(h.Handler, h.Preview, http.StatusOK, &EmailPreviewPayload{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dev/emails/reservation_confirmed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Ada Lovelace") {
		t.Fatalf("expected sample guest in preview")
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Fatalf("expected html content type, got %q", rec.Header().Get(echo.HeaderContentType))
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dev/emails/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown template, got %d", rec.Code)
	}
}

func TestRealtimeConnect(t *testing.T) {
	s := testServer()
	e := newEcho(s)

	tickets := realtime.NewTickets("secret", clock.NewSystem())
	h := NewRealtimeHandler(s, service.NewRealtimeService(tickets))
	e.GET("/api/v1/realtime", h.Connect)

	ts := httptest.NewServer(e)
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/realtime"

	ac := model.AdminContext{UserID: "user_1", RestaurantID: uuid.New(), Role: model.RoleStaff}
	ticket, _, err := tickets.Issue(ac)
	if err != nil {
		t.Fatalf("issue ticket: %v", err)
	}

	t.Run("rejects missing ticket", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err == nil {
			t.Fatalf("expected handshake to fail")
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %+v", resp)
		}
	})

	t.Run("rejects foreign origin", func(t *testing.T) {
		header := http.Header{"Origin": []string{"https://evil.example.com"}}
		_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?ticket="+ticket, header)
		if err == nil {
			t.Fatalf("expected handshake to fail")
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %+v", resp)
		}
	})

	t.Run("delivers restaurant events", func(t *testing.T) {
		header := http.Header{"Origin": []string{"https://admin.example.com"}}
		conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?ticket="+ticket, header)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

		var hello map[string]any
		if err := conn.ReadJSON(&hello); err != nil {
			t.Fatalf("read hello: %v", err)
		}
		if hello["type"] != "connected" || hello["restaurant_id"] != ac.RestaurantID.String() {
			t.Fatalf("unexpected hello %v", hello)
		}

		event, err := events.New(events.OrderCreated, ac.RestaurantID, uuid.New(), map[string]string{"status": "pending"}, time.Now())
		if err != nil {
			t.Fatalf("build event: %v", err)
		}
		if got := s.Realtime.Broadcast(event); got != 1 {
			t.Fatalf("expected 1 delivery, got %d", got)
		}

		var received events.Event
		if err := conn.ReadJSON(&received); err != nil {
			t.Fatalf("read event: %v", err)
		}
		if received.Type != events.OrderCreated || received.RestaurantID != ac.RestaurantID {
			t.Fatalf("unexpected event %+v", received)
		}
	})
}

func TestNoticeResponseEncodesNull(t *testing.T) {
	body, err := json.Marshal(NoticeResponse{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"notice":null}` {
		t.Fatalf("unexpected body %s", body)
	}
}

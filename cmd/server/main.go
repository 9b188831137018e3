package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ugaemi/tiltball-server/internal/config"
	"github.com/ugaemi/tiltball-server/internal/handler"
	"github.com/ugaemi/tiltball-server/internal/permission"
	"github.com/ugaemi/tiltball-server/internal/physics"
	"github.com/ugaemi/tiltball-server/internal/session"
	"github.com/ugaemi/tiltball-server/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	hub := ws.NewHub()
	sm := session.NewManager(cfg.MaxSessions)
	router := handler.NewRouter(sm, permission.NewGate(slog.Default()), handler.Settings{
		Params: physics.Params{
			Sensitivity: cfg.Sensitivity,
			Friction:    cfg.Friction,
		},
		TickRate:          cfg.TickRate,
		PermissionTimeout: cfg.PermissionTimeout,
	})

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	go hub.Run()

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handleHealth(w, hub, sm)
	})
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("server starting", "addr", addr, "tick_rate", cfg.TickRate,
		"sensitivity", cfg.Sensitivity, "friction", cfg.Friction)
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func handleHealth(w http.ResponseWriter, hub *ws.Hub, sm *session.Manager) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","clients":%d,"sessions":%d}`, hub.ClientCount(), sm.Count())
}

func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	codec, err := ws.ParseCodec(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(uuid.New().String(), codec, hub, conn)
	hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}

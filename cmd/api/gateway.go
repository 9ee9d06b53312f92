package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/auth"
	"github.com/PaulBabatuyi/jobboard/internal/chat"
	"github.com/PaulBabatuyi/jobboard/internal/middleware"
	"github.com/PaulBabatuyi/jobboard/internal/search"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxInboundSize = 4 * 1024
)

// gateway serves the browser-facing HTTP surface: health, user search and the
// live chat list over WebSocket.
type gateway struct {
	auth     *auth.JWTManager
	chats    *chat.Service
	search   *search.Searcher
	upgrader websocket.Upgrader
}

// newGateway builds the HTTP handler. WebSocket upgrades are accepted from the
// gateway's own origin and from origins; a "*" entry accepts any origin.
func newGateway(authMgr *auth.JWTManager, chats *chat.Service, searcher *search.Searcher, limiter *middleware.LimiterStore, origins []string) http.Handler {
	g := &gateway{auth: authMgr, chats: chats, search: searcher}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}

	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.HandleFunc("/healthz", g.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	if limiter != nil {
		api.Use(middleware.HTTP(limiter))
	}
	api.HandleFunc("/users/search", g.requireAuth(g.searchUsers)).Methods(http.MethodGet)

	r.HandleFunc("/ws/chats", g.chatFeed).Methods(http.MethodGet)
	return r
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed["*"] {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		return allowed[strings.ToLower(origin)]
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// claims authenticates r by its Authorization header or, for WebSocket
// clients that cannot set headers, its token query parameter.
func (g *gateway) claims(r *http.Request) (*auth.Claims, error) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return nil, errors.New("missing token")
	}
	return g.auth.VerifyToken(token)
}

func (g *gateway) requireAuth(next func(http.ResponseWriter, *http.Request, *auth.Claims)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.claims(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r, claims)
	}
}

func (g *gateway) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (g *gateway) searchUsers(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	users, err := g.search.Users(r.Context(), claims.UserID, r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("search users: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProfiles(users))
}

// chatFeed upgrades to a WebSocket and pushes a chat list snapshot on connect
// and after every change.
func (g *gateway) chatFeed(w http.ResponseWriter, r *http.Request) {
	claims, err := g.claims(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		log.Printf("websocket upgrade: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		readPump(conn)
	}()

	writeChatFeed(conn, g.chats.Subscribe(ctx, claims.UserID))
}

// readPump discards client frames and keeps the read deadline fresh; it
// returns once the client disconnects.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxInboundSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeChatFeed(conn *websocket.Conn, sub *chat.Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Close()
		_ = conn.Close()
	}()

	for {
		select {
		case u, ok := <-sub.Updates():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if u.Err != nil {
				log.Printf("chat feed: %v", u.Err)
				continue
			}
			if err := conn.WriteJSON(toChatListUpdate(u.Chats)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

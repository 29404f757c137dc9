package main

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// hub fans game updates out to every websocket watching a slug.
type hub struct {
	mu       sync.Mutex
	watchers map[string]map[*websocket.Conn]bool
}

var liveHub = &hub{watchers: map[string]map[*websocket.Conn]bool{}}

func (h *hub) add(slug string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[slug] == nil {
		h.watchers[slug] = map[*websocket.Conn]bool{}
	}
	h.watchers[slug][conn] = true
}

func (h *hub) remove(slug string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers[slug], conn)
	if len(h.watchers[slug]) == 0 {
		delete(h.watchers, slug)
	}
}

// broadcast sends payload to every watcher of slug, dropping connections
// that fail to accept the write.
func (h *hub) broadcast(slug string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.watchers[slug] {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(h.watchers[slug], conn)
		}
	}
}

// liveGameHandler upgrades the connection and streams game updates until
// the client goes away.
func liveGameHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))

	db, err := getDB()
	if err != nil {
		Renderer.JSON(w, http.StatusInternalServerError, map[string]string{"error": "bad connection to db"})
		return
	}
	if _, err := getGameID(db, slug); err != nil {
		Renderer.JSON(w, http.StatusNotFound, map[string]string{"error": "no such game"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorw("could not upgrade connection", "slug", slug, zap.Error(err))
		return
	}
	liveHub.add(slug, conn)
	defer func() {
		liveHub.remove(slug, conn)
		conn.Close()
	}()

	// Clients only listen; reads are just for detecting the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

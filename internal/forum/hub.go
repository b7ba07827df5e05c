package forum

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

type EventType string

const (
	EventThreadCreated EventType = "thread.created"
	EventReplyCreated  EventType = "reply.created"
)

type Event struct {
	Type    EventType `json:"type"`
	Topic   string    `json:"topic"`
	Payload any       `json:"payload"`
}

func ForumTopic(forumID string) string {
	return "forum:" + forumID
}

func ThreadTopic(threadID int) string {
	return "thread:" + strconv.Itoa(threadID)
}

// ValidTopic reports whether a client may listen on the topic.
func ValidTopic(topic string) bool {
	kind, id, ok := strings.Cut(topic, ":")
	if !ok {
		return false
	}
	switch kind {
	case "forum":
		_, ok := ForumByID(id)
		return ok
	case "thread":
		n, err := strconv.Atoi(id)
		return err == nil && n > 0
	default:
		return false
	}
}

type listener struct {
	topic string
	conn  *websocket.Conn
	// websocket conns support one concurrent writer
	writeMu sync.Mutex
}

func (l *listener) write(messageType int, data []byte) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	if err := l.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return l.conn.WriteMessage(messageType, data)
}

// Hub fans forum events out to websocket listeners, grouped by topic.
type Hub struct {
	mu             sync.RWMutex
	listeners      map[string]map[*listener]struct{}
	upgrader       websocket.Upgrader
	metricsManager *metrics.Manager
}

func NewHub(allowedOrigins []string, metricsManager *metrics.Manager) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Hub{
		listeners: make(map[string]map[*listener]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		metricsManager: metricsManager,
	}
}

func (h *Hub) register(l *listener) {
	h.mu.Lock()
	if h.listeners[l.topic] == nil {
		h.listeners[l.topic] = make(map[*listener]struct{})
	}
	h.listeners[l.topic][l] = struct{}{}
	h.mu.Unlock()

	if h.metricsManager != nil {
		h.metricsManager.GaugeLiveListeners.Inc()
	}
}

func (h *Hub) unregister(l *listener) {
	h.mu.Lock()
	set := h.listeners[l.topic]
	_, found := set[l]
	if found {
		delete(set, l)
		if len(set) == 0 {
			delete(h.listeners, l.topic)
		}
	}
	h.mu.Unlock()

	if !found {
		return
	}
	if h.metricsManager != nil {
		h.metricsManager.GaugeLiveListeners.Dec()
	}
	_ = l.conn.Close()
}

// Listeners returns the number of listeners on the topic.
func (h *Hub) Listeners(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[topic])
}

func (h *Hub) Publish(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Errorf("forum hub: marshal %s event: %s", event.Type, err)
		return
	}

	h.mu.RLock()
	targets := make([]*listener, 0, len(h.listeners[event.Topic]))
	for l := range h.listeners[event.Topic] {
		targets = append(targets, l)
	}
	h.mu.RUnlock()

	for _, l := range targets {
		if err := l.write(websocket.TextMessage, msg); err != nil {
			log.Debugf("forum hub: write to listener on %s: %s", event.Topic, err)
			h.unregister(l)
		}
	}
}

// Serve upgrades the request and keeps the listener registered until the
// client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, topic string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade: %w", err)
	}

	l := &listener{topic: topic, conn: conn}
	h.register(l)
	defer h.unregister(l)

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := l.write(websocket.PingMessage, nil); err != nil {
					_ = conn.Close()
					return
				}
			}
		}
	}()

	// listeners only receive, the read loop detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// Close disconnects every listener.
func (h *Hub) Close() {
	h.mu.RLock()
	var all []*listener
	for _, set := range h.listeners {
		for l := range set {
			all = append(all, l)
		}
	}
	h.mu.RUnlock()

	for _, l := range all {
		h.unregister(l)
	}
}

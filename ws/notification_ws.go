package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/lehar2932-art/tiffin-testing/services"
	"github.com/lehar2932-art/tiffin-testing/utils"
)

// NotificationHub pushes in-app notifications and unread counts to connected
// clients. One user may hold several connections (multiple tabs).
type NotificationHub struct {
	clients map[uint]map[*websocket.Conn]bool // userID -> set of connections
	mu      sync.Mutex
	service *services.NotificationService
}

type event struct {
	Kind        string `json:"kind"` // "notification" | "unread"
	Payload     any    `json:"payload,omitempty"`
	UnreadCount int64  `json:"unreadCount"`
}

func NewNotificationHub(service *services.NotificationService) *NotificationHub {
	return &NotificationHub{
		clients: make(map[uint]map[*websocket.Conn]bool),
		service: service,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Push implements services.Pusher. Called after every notification write.
func (h *NotificationHub) Push(userID uint, payload any) {
	h.mu.Lock()
	conns := h.clients[userID]
	if len(conns) == 0 {
		h.mu.Unlock()
		return
	}
	unread, err := h.service.UnreadCount(userID)
	if err != nil {
		log.Printf("ws unread count for user %d: %v", userID, err)
	}
	for conn := range conns {
		if err := conn.WriteJSON(event{Kind: "notification", Payload: payload, UnreadCount: unread}); err != nil {
			log.Printf("ws write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
	h.mu.Unlock()
}

// WS route: /ws/notifications (behind auth middleware).
func (h *NotificationHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
	h.mu.Unlock()

	// Initial unread count so the client can render the badge immediately.
	if unread, err := h.service.UnreadCount(userID); err == nil {
		_ = conn.WriteJSON(event{Kind: "unread", UnreadCount: unread})
	}

	defer func() {
		h.mu.Lock()
		delete(h.clients[userID], conn)
		h.mu.Unlock()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	for {
		// Clients only ping; any payload refreshes the unread count.
		conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if unread, err := h.service.UnreadCount(userID); err == nil {
			if err := conn.WriteJSON(event{Kind: "unread", UnreadCount: unread}); err != nil {
				return
			}
		}
	}
}

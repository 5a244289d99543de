package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"iotmarket/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS layer
	},
}

type Handler struct {
	feed *Feed
}

func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

// HandleWebSocketGin upgrades GET /ws/events?identity=addr and streams the
// caller's marketplace events until the peer disconnects.
func (h *Handler) HandleWebSocketGin(c *gin.Context) {
	identity := c.Query("identity")
	if identity == "" {
		response.SendAPIError(c, http.StatusBadRequest, "validation", "identity query parameter is required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("event feed upgrade failed for %s: %v", identity, err)
		return
	}

	sub := h.feed.Subscribe(identity)
	defer h.feed.Unsubscribe(sub)
	defer conn.Close()

	// Reader drains control frames and signals peer disconnect.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-sub.Messages():
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-sub.Done():
			return
		case <-disconnected:
			return
		}
	}
}

// GetStatusGin reports which identities are connected to the feed.
func (h *Handler) GetStatusGin(c *gin.Context) {
	response.SendAPIResponse(c, http.StatusOK, true, "feed status", gin.H{
		"subscribers": h.feed.Subscribers(),
	})
}

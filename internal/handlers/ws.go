package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/amaumene/gomovies/internal/app"
	"github.com/amaumene/gomovies/internal/constants"
	"github.com/amaumene/gomovies/internal/middleware"
)

// wsRequest is one client message. Submit skips the debounce delay.
type wsRequest struct {
	Query  string `json:"query"`
	Submit bool   `json:"submit,omitempty"`
}

func (h *Handler) handleWebsocket(c *gin.Context) {
	id := middleware.GetRequestID(c)

	// the handshake is written by the upgrader, not through c.Writer
	header := http.Header{}
	if id != "" {
		header.Set(middleware.RequestIDHeader, id)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		// Upgrade has already answered the client
		h.logger.Warnf("[WS] upgrade failed: %v", err)
		return
	}

	h.logger.Infof("[WS] %s session opened from %s", id, c.ClientIP())
	h.serveSession(c.Request.Context(), conn)
	h.logger.Infof("[WS] %s session closed", id)
}

// serveSession runs a Controller for conn until either side goes away.
func (h *Handler) serveSession(parent context.Context, conn *websocket.Conn) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	controller := app.NewController(h.finder, app.Options{
		DebounceDelay: h.config.DebounceDelay(),
		TrendingLimit: h.config.TrendingLimit,
		Logger:        h.logger,
	})
	updates, unsubscribe := controller.Subscribe(16)
	defer unsubscribe()

	go controller.Run(ctx)
	go h.writePump(ctx, conn, updates)

	h.readPump(conn, controller)

	cancel()
	<-controller.Done()
}

func (h *Handler) readPump(conn *websocket.Conn, controller *app.Controller) {
	conn.SetReadLimit(constants.WSMaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(constants.WSPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(constants.WSPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warnf("[WS] read error: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.logger.Debugf("[WS] ignoring malformed message: %v", err)
			continue
		}
		if len(req.Query) > constants.MaxQueryLength {
			h.logger.Debugf("[WS] ignoring query of %d bytes", len(req.Query))
			continue
		}

		controller.SetQuery(req.Query)
		if req.Submit {
			controller.Submit()
		}
	}
}

// writePump is the only writer on conn. Closing conn on exit unblocks
// readPump.
func (h *Handler) writePump(ctx context.Context, conn *websocket.Conn, updates <-chan app.State) {
	ticker := time.NewTicker(constants.WSPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(constants.WSWriteWait))
			return

		case st := <-updates:
			conn.SetWriteDeadline(time.Now().Add(constants.WSWriteWait))
			if err := conn.WriteJSON(st); err != nil {
				h.logger.Debugf("[WS] write error: %v", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(constants.WSWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

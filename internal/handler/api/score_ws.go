package api

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"ChurnScope/internal/domain/models"
	xhttp "ChurnScope/pkg/http"
	xlogger "ChurnScope/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsMaxMessage   = 16 << 10
	wsPongWait     = 60 * time.Second
	wsPingInterval = 50 * time.Second
	wsWriteWait    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

type wsReply struct {
	Type   string                   `json:"type"`
	Data   *models.PredictionResult `json:"data,omitempty"`
	Errors []xhttp.ValidationError  `json:"errors,omitempty"`
}

// ScoreSocket re-scores the record every time the client sends one. Each
// text message is a CustomerRecord; each reply is a result or an error.
func (h *DashboardHandler) ScoreSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	var wmu sync.Mutex
	write := func(v interface{}) error {
		wmu.Lock()
		defer wmu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(v)
	}

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				wmu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
				wmu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", xlogger.Error(err))
			}
			return nil
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		if mt != websocket.TextMessage {
			continue
		}

		if err := write(h.scoreMessage(ctx, msg)); err != nil {
			h.logger.Warn("websocket write error", xlogger.Error(err))
			return nil
		}
	}
}

func (h *DashboardHandler) scoreMessage(ctx context.Context, msg []byte) wsReply {
	rec := models.CustomerRecord{}
	if err := json.Unmarshal(msg, &rec); err != nil {
		be := xhttp.BadRequestError("invalid JSON: " + err.Error())
		return wsReply{Type: "error", Errors: []xhttp.ValidationError{{Code: be.Code, Message: be.Message}}}
	}
	if verr := xhttp.ValidateRequest(ctx, &rec); verr != nil {
		return wsReply{Type: "error", Errors: verr}
	}

	res, err := h.scorer.Score(ctx, rec)
	if err != nil {
		appErr := scoreError(err)
		if !errors.Is(err, context.Canceled) {
			h.logger.Error("websocket score error", xlogger.Error(err))
		}
		return wsReply{Type: "error", Errors: []xhttp.ValidationError{{Code: appErr.Code, Field: appErr.Field, Message: appErr.Message}}}
	}
	return wsReply{Type: "result", Data: &res}
}

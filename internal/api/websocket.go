package api

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST surface is already open CORS; the preview socket follows.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	previewWriteWait  = 10 * time.Second
	previewPongWait   = 60 * time.Second
	previewPingPeriod = 50 * time.Second
)

// previewFrame is one client update: the current form values. The
// calculator id is fixed by the endpoint path.
type previewFrame struct {
	Values      map[string]string            `json:"values"`
	UnitSystems map[string]domain.UnitSystem `json:"unit_systems,omitempty"`
}

// wsWriter is the write side of a websocket connection.
type wsWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v interface{}) error
}

// previewConn serializes writes to one preview socket. gorilla/websocket
// allows at most one concurrent writer, and the keepalive goroutine writes
// pings while the read loop writes replies.
type previewConn struct {
	mu   sync.Mutex
	conn wsWriter
}

func (p *previewConn) ping() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(previewWriteWait))
	return p.conn.WriteMessage(websocket.PingMessage, nil)
}

func (p *previewConn) send(reply previewResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(previewWriteWait))
	return p.conn.WriteJSON(reply)
}

// previewResult is the server's answer to one frame. Incomplete or invalid
// forms are normal while the user is typing, so evaluation failures come
// back as an in-band error rather than closing the socket.
type previewResult struct {
	OK             bool             `json:"ok"`
	Value          *float64         `json:"value,omitempty"`
	DisplayValue   string           `json:"display_value,omitempty"`
	Unit           string           `json:"unit,omitempty"`
	Interpretation string           `json:"interpretation,omitempty"`
	Warnings       []domain.Warning `json:"warnings,omitempty"`
	Error          string           `json:"error,omitempty"`
	Code           string           `json:"code,omitempty"`
}

// handlePreview upgrades to a websocket and re-evaluates the calculator on
// every frame the client sends, streaming live previews as the form fills.
func (s *Server) handlePreview(c *gin.Context) {
	def, err := s.service.Registry().GetByID(c.Param("id"))
	if err != nil {
		s.writeEvaluationError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(previewPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(previewPongWait))
	})

	pw := &previewConn{conn: conn}

	// Keepalive pings; the read loop below owns reads.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(previewPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := pw.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		var frame previewFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).Debug("preview socket closed unexpectedly")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(previewPongWait))

		result, err := s.service.Evaluate(c.Request.Context(), domain.EvaluationRequest{
			CalculatorID: def.ID,
			Values:       frame.Values,
			UnitSystems:  frame.UnitSystems,
		})

		var reply previewResult
		if err != nil {
			code := domain.ErrorCode(err)
			if errors.Is(err, domain.ErrNotFound) {
				code = domain.ErrCodeCalculatorNotFound
			}
			reply = previewResult{OK: false, Error: err.Error(), Code: code}
		} else {
			reply = previewResult{
				OK:             true,
				Value:          &result.Value,
				DisplayValue:   strconv.FormatFloat(result.Value, 'f', def.ResultPrecision, 64),
				Unit:           result.Unit,
				Interpretation: result.Interpretation,
				Warnings:       result.Warnings,
			}
		}

		if err := pw.send(reply); err != nil {
			return
		}
	}
}

package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"irview/internal/session"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsInbound struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Index int    `json:"index"`
}

type wsOutbound struct {
	Type     string            `json:"type"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	Code     string            `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// handleSession runs one live edit session over a websocket. The client
// streams set_text and select messages; the server answers each edit
// with a debounced snapshot once typing goes quiet.
func (s *Server) handleSession(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		slog.Warn("session ws set read deadline failed", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writeCh := make(chan wsOutbound, 32)
	done := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	sess := session.New("", s.cache, s.cfg.Debounce, func(snap session.Snapshot) {
		pushWS(writeCh, wsOutbound{Type: "snapshot", Snapshot: &snap})
	})
	defer sess.Close()

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			close(done)
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "set_text":
			sess.SetText(in.Text)
		case "select":
			if err := sess.Select(in.Index); err != nil {
				pushWS(writeCh, wsOutbound{Type: "error", Code: "OUT_OF_RANGE", Message: err.Error()})
			}
		case "snapshot":
			snap := sess.Current()
			pushWS(writeCh, wsOutbound{Type: "snapshot", Snapshot: &snap})
		case "ping":
			pushWS(writeCh, wsOutbound{Type: "pong"})
		default:
			pushWS(writeCh, wsOutbound{Type: "error", Code: "INVALID_REQUEST", Message: "unknown message type"})
		}
	}
}

// pushWS drops the message when the write buffer is full rather than
// blocking the read loop.
func pushWS(ch chan wsOutbound, out wsOutbound) {
	select {
	case ch <- out:
	default:
	}
}

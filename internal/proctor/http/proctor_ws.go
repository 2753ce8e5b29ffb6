package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wpdevquiz/proctor/internal/proctor/service"
	"github.com/wpdevquiz/proctor/pkg/httpx"
	"github.com/wpdevquiz/proctor/pkg/proctorsdk"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

const (
	proctorReadLimit    = 4 << 10
	proctorWriteWait    = 10 * time.Second
	proctorIdleDeadline = 10 * time.Minute
)

// ProctorHandler runs the live proctoring channel. The quiz page holds one
// WebSocket open for the duration of an attempt and reports violations as
// they happen; the server owns the counter policy and tells the client
// whether to show the warning or the blocked screen.
type ProctorHandler struct {
	ModerationService *service.ModerationService

	upgrader websocket.Upgrader
}

func NewProctorHandler(ms *service.ModerationService) *ProctorHandler {
	return &ProctorHandler{
		ModerationService: ms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request; authentication already ran in the
// middleware chain (browsers cannot set WS headers, so the token arrives
// as a query parameter there).
func (h *ProctorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromCtx(ctx)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(proctorReadLimit)

	log.Info("proctor channel opened", "user_id", userID)

	// Single goroutine reads and replies in turn, so writes never race.
	gate := newViolationGate()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(proctorIdleDeadline))

		var msg proctorsdk.ProctorClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("proctor channel closed abnormally", "user_id", userID, "err", err)
			}
			return
		}

		switch msg.Type {
		case proctorsdk.ProctorTypeViolation:
			if done := h.handleViolation(r, conn, gate, userID, msg.ViolationType); done {
				return
			}
		case proctorsdk.ProctorTypeReset:
			gate.Reset()
			h.reply(conn, proctorsdk.ProctorServerMessage{Type: proctorsdk.ProctorTypeAck})
		default:
			h.reply(conn, proctorsdk.ProctorServerMessage{
				Type:  proctorsdk.ProctorTypeError,
				Error: "unsupported message type",
			})
		}
	}
}

// handleViolation applies the gate and, when it fires, the counter policy.
// Returns true when the connection should close (user just got blocked).
func (h *ProctorHandler) handleViolation(r *http.Request, conn *websocket.Conn, gate *violationGate, userID, violationType string) bool {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !gate.Fire() {
		h.reply(conn, proctorsdk.ProctorServerMessage{
			Type:       proctorsdk.ProctorTypeAck,
			Suppressed: true,
		})
		return false
	}

	state, err := h.ModerationService.RecordViolation(ctx, userID, violationType)
	if err != nil {
		log.Error("failed to record violation", "user_id", userID, "err", err)
		h.reply(conn, proctorsdk.ProctorServerMessage{
			Type:  proctorsdk.ProctorTypeError,
			Error: "failed to record violation",
		})
		return false
	}

	out := proctorsdk.ProctorServerMessage{
		Type:          proctorsdk.ProctorTypeWarning,
		WarningCount:  state.Count,
		IsBlocked:     state.IsBlocked,
		BlockedReason: state.BlockedReason,
	}
	if state.IsBlocked {
		out.Type = proctorsdk.ProctorTypeBlocked
	}
	h.reply(conn, out)

	if state.IsBlocked {
		deadline := time.Now().Add(proctorWriteWait)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "account blocked"),
			deadline)
		return true
	}
	return false
}

func (h *ProctorHandler) reply(conn *websocket.Conn, msg proctorsdk.ProctorServerMessage) {
	_ = conn.SetWriteDeadline(time.Now().Add(proctorWriteWait))
	_ = conn.WriteJSON(msg)
}

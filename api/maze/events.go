package mazeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer.
	writeWait    = 2 * time.Second
	pongWait     = 30 * time.Second
	pingInterval = pongWait / 2
)

var errClientGone = errors.New("event stream client disconnected")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// events streams session events of the table over a websocket until either side closes.
func (mc *MazeController) events(ctx *gin.Context) {
	binding, ok := mc.authorizedBinding(ctx)
	if !ok {
		return
	}

	events, cancel, err := mc.sessions.Subscribe(binding.PlayerID)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	defer cancel()

	ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		mc.logger.Warning(fmt.Sprintf("websocket upgrade failed: %s", err))
		return
	}

	group, groupCtx := errgroup.WithContext(ctx.Request.Context())
	group.Go(func() error {
		return readMessages(ws)
	})
	group.Go(func() error {
		// Closing the connection unblocks the reader.
		defer ws.Close()
		return publish(groupCtx, ws, events)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errClientGone) {
		mc.logger.Warning(fmt.Sprintf("event stream of %s: %s", binding.PlayerID, err))
	}
}

// readMessages drains client frames so control messages are handled. It returns once the
// connection fails or the pong deadline passes.
func readMessages(ws *websocket.Conn) error {
	if err := ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return errClientGone
		}
	}
}

// publish writes events to the peer and pings it until the stream ends.
func publish(ctx context.Context, ws *websocket.Conn, events <-chan game.Event) error {
	pinger := time.NewTicker(pingInterval)
	defer pinger.Stop()

	for {
		select {
		case <-ctx.Done():
			closeWebsocket(ws)
			return nil
		case <-pinger.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		case e, ok := <-events:
			// Graceful input channel closure
			if !ok {
				closeWebsocket(ws)
				return nil
			}
			if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to set deadline: %w", err)
			}
			if err := ws.WriteJSON(e); err != nil {
				if isError(err) {
					return fmt.Errorf("publish failed: %w", err)
				}
				return errClientGone
			}
		}
	}
}

func closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

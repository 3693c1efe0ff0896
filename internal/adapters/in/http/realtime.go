package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// roomPrefixes are the room families clients may subscribe to. Anything
// else is rejected before touching the bus.
var roomPrefixes = []string{"order:", "courier:", "restaurant:"}

// StreamRoom handles GET /api/v1/realtime/:room - a server-sent events
// stream bridging the room's event-bus subscription to the connection.
// There is no replay: a client that reconnects reconciles current state via
// GET /orders/:id first.
func (s *Server) StreamRoom(ctx echo.Context) error {
	room := ctx.Param("room")
	if !validRoom(room) {
		return badRequest(ctx, "unknown room: "+room)
	}

	sub := s.bus.Subscribe(room)
	defer sub.Close()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case event, ok := <-sub.C():
			if !ok {
				return nil
			}

			data, err := json.Marshal(event.Payload)
			if err != nil {
				continue
			}
			if _, err = fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}

func validRoom(room string) bool {
	for _, prefix := range roomPrefixes {
		if strings.HasPrefix(room, prefix) && len(room) > len(prefix) {
			return true
		}
	}
	return false
}

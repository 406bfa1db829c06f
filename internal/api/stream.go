package api

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// stream writes every change event as a server-sent event until the client
// goes away or the broker closes
func (s *Server) stream(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := res.Writer.(http.Flusher)
	if !ok {
		return fmt.Errorf("stream unsupported by response writer")
	}

	ch, unsubscribe := s.broker.Subscribe()
	defer unsubscribe()

	s.metrics.AddStreamClients(1)
	defer s.metrics.AddStreamClients(-1)

	res.WriteHeader(http.StatusOK)
	if _, err := res.Write([]byte(": conectado\n\n")); err != nil {
		return nil
	}
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			data, err := sonic.Marshal(ev)
			if err != nil {
				s.logger.Warn("failed to encode event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
				// client gone
				return nil
			}
			flusher.Flush()
			s.metrics.IncEventsSent()
		}
	}
}

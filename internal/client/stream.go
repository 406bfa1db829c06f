package client

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/thenoetrevino/tablero/internal/events"
)

// Stream reads the server-sent event stream and calls fn for every change
// event. It returns when ctx ends or the server closes the stream.
func (c *Client) Stream(ctx context.Context, fn func(events.Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/eventos", nil)
	if err != nil {
		return fmt.Errorf("failed to build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return fmt.Errorf("failed to open event stream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		payload, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			// comments, blank separators
			continue
		}
		var ev events.Event
		if err := sonic.UnmarshalString(payload, &ev); err != nil {
			continue
		}
		fn(ev)
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("event stream: %w", err)
	}
	return nil
}

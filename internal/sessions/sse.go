package sessions

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
)

// setStreamHeaders prepares the response for server-sent events.
// X-Accel-Buffering disables proxy buffering so events reach the
// client as they are written.
func setStreamHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache, no-transform")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}

// writeEvent marshals the payload and writes one SSE data frame,
// flushing immediately.
func writeEvent(w gin.ResponseWriter, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

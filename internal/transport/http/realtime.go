package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/feed"
)

const heartbeatInterval = 30 * time.Second

// HandleRealtime streams change notifications as server-sent events. Clients
// reconcile on every message; the payload only says what kind of change
// happened. The subscription is disposed when the client goes away.
func HandleRealtime(hub *feed.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, codeInternalError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		sub := hub.Subscribe()
		defer sub.Close()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				flusher.Flush()
			case change, open := <-sub.C:
				if !open {
					return
				}
				payload, err := json.Marshal(change)
				if err != nil {
					continue
				}
				if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

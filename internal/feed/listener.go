package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/metrics"
)

const notifyChannel = "campus_changes"
const reconnectDelay = 2 * time.Second

// Listener holds a dedicated connection on LISTEN and feeds decoded
// notifications into the hub. Schema triggers emit a notification for every
// insert/update/delete on events and registrations, regardless of which
// session caused it.
type Listener struct {
	pool   *pgxpool.Pool
	hub    *Hub
	logger *log.Logger
}

func NewListener(pool *pgxpool.Pool, hub *Hub, logger *log.Logger) *Listener {
	if logger == nil {
		logger = log.Default()
	}
	return &Listener{pool: pool, hub: hub, logger: logger}
}

// Run blocks until the context is cancelled, reconnecting on errors.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Printf("change feed listener error: %v, reconnecting", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var change Change
		if err := json.Unmarshal([]byte(notification.Payload), &change); err != nil {
			l.logger.Printf("change feed: bad payload %q: %v", notification.Payload, err)
			continue
		}

		metrics.ChangeNotificationsTotal.WithLabelValues(change.Table).Inc()
		l.hub.Publish(change)
	}
}

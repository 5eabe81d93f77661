package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/feed"
)

// EventGetter fetches an event by id for announcement text.
type EventGetter interface {
	GetEvent(ctx context.Context, id string) (domain.Event, error)
}

// Announcer posts newly created events to a campus Telegram channel. It is
// optional wiring: the process runs fine without a bot token.
type Announcer struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	events EventGetter
	logger *log.Logger
}

func NewAnnouncer(token string, chatID int64, events EventGetter, logger *log.Logger) (*Announcer, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Announcer{bot: bot, chatID: chatID, events: events, logger: logger}, nil
}

// Run consumes the change feed and announces event inserts until the context
// is cancelled.
func (a *Announcer) Run(ctx context.Context, sub *feed.Subscription) {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-sub.C:
			if !ok {
				return
			}
			if change.Table != "events" || change.Op != "insert" {
				continue
			}
			a.announce(ctx, change.EventID)
		}
	}
}

func (a *Announcer) announce(ctx context.Context, eventID string) {
	event, err := a.events.GetEvent(ctx, eventID)
	if err != nil {
		a.logger.Printf("announce: fetch event %s: %v", eventID, err)
		return
	}

	text := fmt.Sprintf(
		"New event: %s (%s)%s starts %s",
		event.Title,
		event.Category,
		venueSuffix(event.Venue),
		event.StartDate.Format("Jan 2, 3:04 PM"),
	)
	msg := tgbotapi.NewMessage(a.chatID, text)
	if _, err := a.bot.Send(msg); err != nil {
		a.logger.Printf("announce: send: %v", err)
	}
}

func venueSuffix(venue string) string {
	if venue == "" {
		return ""
	}
	return " at " + venue
}

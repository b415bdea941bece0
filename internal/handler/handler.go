package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// requestTimeout bounds storage and API calls made while handling one update
const requestTimeout = 15 * time.Second

// NewSettings returns bot settings that handle updates one at a time in arrival order,
// so a user's "/add" is always processed before the title that follows it
func NewSettings(token string, pollTimeout time.Duration, onError func(error, tele.Context)) tele.Settings {
	return tele.Settings{
		Token:       token,
		Poller:      &tele.LongPoller{Timeout: pollTimeout},
		Synchronous: true,
		OnError:     onError,
	}
}

// Handler binds telebot updates to the Dispatcher
type Handler struct {
	bot        *tele.Bot
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, dispatcher *Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		bot:        bot,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	for _, cmd := range []string{CommandStart, CommandHelp, CommandAdd, CommandList, CommandReset} {
		h.bot.Handle("/"+cmd, h.handle)
	}

	// Free text and locations
	h.bot.Handle(tele.OnText, h.handle)
	h.bot.Handle(tele.OnLocation, h.handle)
}

// Commands returns the command menu shown by Telegram clients
func Commands() []tele.Command {
	return []tele.Command{
		{Text: CommandStart, Description: "начать работу"},
		{Text: CommandHelp, Description: "напечатать подсказки"},
		{Text: CommandAdd, Description: "добавление нового места"},
		{Text: CommandList, Description: "отображение добавленных мест"},
		{Text: CommandReset, Description: "удалить все добавленные локации"},
	}
}

func (h *Handler) handle(c tele.Context) error {
	ev, ok := eventFromContext(c)
	if !ok {
		h.logger.Debug("Skipping update without chat")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return h.dispatcher.Dispatch(ctx, ev)
}

// eventFromContext converts a telebot update into an Event
func eventFromContext(c tele.Context) (Event, bool) {
	msg := c.Message()
	if msg == nil || msg.Chat == nil {
		return Event{}, false
	}

	ev := Event{
		UserID: msg.Chat.ID,
		Text:   msg.Text,
	}

	switch {
	case msg.Location != nil:
		ev.Kind = EventLocation
		ev.Location = &Location{
			Latitude:  float32To64(msg.Location.Lat),
			Longitude: float32To64(msg.Location.Lng),
		}
	case isCommand(msg.Text):
		ev.Kind = EventCommand
		ev.Command = commandName(msg.Text)
	default:
		ev.Kind = EventText
	}

	return ev, true
}

func isCommand(text string) bool {
	switch commandName(text) {
	case CommandStart, CommandHelp, CommandAdd, CommandList, CommandReset:
		return strings.HasPrefix(text, "/")
	}
	return false
}

// commandName extracts "add" from "/add@my_bot payload"
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "/")
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	return name
}

// float32To64 keeps the shortest decimal form, so 1.23 stays 1.23
func float32To64(f float32) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'f', -1, 32), 64)
	return v
}

// sender is the part of *tele.Bot used to deliver replies
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelebotResponder sends replies through the Telegram Bot API
type TelebotResponder struct {
	bot sender
}

// NewTelebotResponder creates a responder for the given bot
func NewTelebotResponder(bot *tele.Bot) *TelebotResponder {
	return &TelebotResponder{bot: bot}
}

// SendText sends a plain text message
func (r *TelebotResponder) SendText(_ context.Context, userID int64, text string) error {
	_, err := r.bot.Send(tele.ChatID(userID), text)
	return err
}

// SendLocation sends a map pin
func (r *TelebotResponder) SendLocation(_ context.Context, userID int64, latitude, longitude float64) error {
	_, err := r.bot.Send(tele.ChatID(userID), &tele.Location{
		Lat: float32(latitude),
		Lng: float32(longitude),
	})
	return err
}

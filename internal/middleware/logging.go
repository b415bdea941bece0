package middleware

import (
	"strings"
	"time"

	"locationbot/internal/metrics"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates middleware that logs and counts every update
func Logging(logger *zap.Logger, m *metrics.Metrics) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			kind := updateKind(c)
			start := time.Now()

			m.Updates.WithLabelValues(kind).Inc()
			logger.Debug("Update received",
				zap.String("kind", kind),
				zap.Int64("chat_id", chatID(c)),
			)

			err := next(c)

			m.HandlerSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
			if err != nil {
				m.HandlerErrors.WithLabelValues(kind).Inc()
				logger.Error("Failed to handle update",
					zap.String("kind", kind),
					zap.Int64("chat_id", chatID(c)),
					zap.Error(err),
				)
			}

			return err
		}
	}
}

func updateKind(c tele.Context) string {
	msg := c.Message()
	switch {
	case msg == nil:
		return "other"
	case msg.Location != nil:
		return "location"
	case strings.HasPrefix(msg.Text, "/"):
		return "command"
	case msg.Text != "":
		return "text"
	default:
		return "other"
	}
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}

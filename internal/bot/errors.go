package bot

import (
	"context"
	"errors"

	"github.com/DanielaGluhova/Fitness-Booking-Application/internal/fitness"
)

// sendError turns a backend failure into a user-visible banner. A 401/403
// shows the fixed unauthorized message and nothing more: the stored
// session stays in place and the user decides when to log in again.
func (b *Bot) sendError(ctx context.Context, chatID int64, err error, fallback string) {
	if err == nil {
		return
	}

	b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Backend call failed")

	var apiErr *fitness.APIError
	if errors.As(err, &apiErr) {
		b.sendMessage(chatID, "❌ "+apiErr.Message)
		return
	}

	b.sendMessage(chatID, "❌ "+fallback)
}

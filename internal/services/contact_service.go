package services

import (
	"github.com/rs/zerolog"

	"go-shop/internal/apperror"
	"go-shop/internal/mailer"
	"go-shop/internal/models"
)

const MsgContactSent = "Your message has been sent successfully!"

type ContactService struct {
	mailer mailer.Mailer
	logger zerolog.Logger
}

func NewContactService(m mailer.Mailer, logger zerolog.Logger) *ContactService {
	return &ContactService{
		mailer: m,
		logger: logger,
	}
}

// Submit hands a contact message to the delivery capability. A delivery
// failure is surfaced to the caller rather than silently swallowed.
func (s *ContactService) Submit(msg models.ContactMessage) error {
	if err := s.mailer.Send(msg); err != nil {
		return apperror.NewDeliveryError("An error occurred while sending your message. Please try again later.", err)
	}
	return nil
}

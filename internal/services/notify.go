package services

import (
	"context"
	"sync"
	"time"

	"breeder-site-backend/internal/models"

	"github.com/rs/zerolog/log"
)

const defaultNotifyTimeout = 30 * time.Second

// Broadcaster pushes live events to dashboards
type Broadcaster interface {
	Broadcast(event models.LiveEvent)
}

// Notifier runs the post-commit side effects of a new inquiry. Every task is
// detached from the request, runs at most once and only logs its failures.
type Notifier struct {
	mailer     Mailer
	live       Broadcaster
	puppies    PuppyStore
	adminEmail string
	timeout    time.Duration
	wg         sync.WaitGroup
}

// NewNotifier creates a new notifier. live may be nil and an empty adminEmail
// skips the operator message.
func NewNotifier(mailer Mailer, live Broadcaster, puppies PuppyStore, adminEmail string) *Notifier {
	return &Notifier{
		mailer:     mailer,
		live:       live,
		puppies:    puppies,
		adminEmail: adminEmail,
		timeout:    defaultNotifyTimeout,
	}
}

// InquiryCreated starts the notification task and returns immediately
func (n *Notifier) InquiryCreated(inquiry models.Inquiry) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		n.deliver(ctx, inquiry)
	}()
}

// Wait blocks until every started task has finished or ctx is done
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) deliver(ctx context.Context, inquiry models.Inquiry) {
	if n.live != nil {
		n.live.Broadcast(models.LiveEvent{Type: EventInquiryCreated, Data: inquiry})
	}

	puppyName := n.puppyName(ctx, inquiry.SelectedPuppyID)

	if n.adminEmail != "" {
		email, err := AdminInquiryEmail(n.adminEmail, inquiry, puppyName)
		if err == nil {
			err = n.mailer.Send(ctx, email)
		}
		if err != nil {
			log.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("Failed to send admin inquiry email")
		}
	}

	email, err := UserInquiryEmail(inquiry, puppyName)
	if err == nil {
		err = n.mailer.Send(ctx, email)
	}
	if err != nil {
		log.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("Failed to send inquiry confirmation email")
		return
	}

	log.Info().Str("inquiry_id", inquiry.ID).Msg("Inquiry notifications sent")
}

func (n *Notifier) puppyName(ctx context.Context, id *string) string {
	if id == nil {
		return ""
	}
	puppy, err := n.puppies.GetByID(ctx, *id)
	if err != nil {
		log.Warn().Err(err).Str("puppy_id", *id).Msg("Failed to resolve selected puppy for email")
		return ""
	}
	return puppy.Name
}

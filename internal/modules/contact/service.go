package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"teecole/internal/domain"
	"teecole/internal/notification"
	"teecole/internal/pkg/validator"
)

const (
	msgSubmitted    = "Contact form submitted successfully"
	noteMailFailed  = "Your message was saved, but the notification email could not be sent."
	noteMailOffline = "Your message was saved. Email notifications are currently disabled."
)

type Service struct {
	repo     Repository
	mailer   notification.Mailer
	notifyTo string
	policy   *bluemonday.Policy
	log      logrus.FieldLogger
}

func NewService(repo Repository, mailer notification.Mailer, notifyTo string, log logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		mailer:   mailer,
		notifyTo: notifyTo,
		policy:   bluemonday.StrictPolicy(),
		log:      log,
	}
}

// Submit stores a cleaned submission and then tries to notify the office.
// Only invalid input or a failed insert make it return an error.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	req = s.clean(req)
	if fields := validator.Validate(&req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	row := &domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  domain.ContactStatusNew,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("save contact submission: %w", err)
	}

	result := &SubmitResult{ID: row.ID, Message: msgSubmitted, EmailSent: true}

	if err := s.mailer.Send(ctx, s.notification(row)); err != nil {
		result.EmailSent = false
		entry := s.log.WithFields(logrus.Fields{"submission_id": row.ID, "to": s.notifyTo})
		if errors.Is(err, notification.ErrMailDisabled) {
			result.Note = noteMailOffline
			entry.Info("contact notification skipped")
		} else {
			result.Note = noteMailFailed
			entry.WithError(err).Warn("contact notification failed")
		}
	}

	return result, nil
}

func (s *Service) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	if rows == nil {
		rows = []domain.ContactSubmission{}
	}
	return rows, nil
}

func (s *Service) clean(req SubmitRequest) SubmitRequest {
	return SubmitRequest{
		Name:    s.plain(req.Name),
		Email:   s.plain(req.Email),
		Phone:   s.plain(req.Phone),
		Subject: s.plain(req.Subject),
		Message: s.plain(req.Message),
	}
}

// plain strips markup and returns unescaped, trimmed text.
func (s *Service) plain(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *Service) notification(row *domain.ContactSubmission) notification.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact form submission #%d\n\n", row.ID)
	fmt.Fprintf(&b, "Name: %s\n", row.Name)
	fmt.Fprintf(&b, "Email: %s\n", row.Email)
	if row.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", row.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", row.Subject)
	b.WriteString(row.Message)

	return notification.Message{
		To:      s.notifyTo,
		ReplyTo: row.Email,
		Subject: "New enquiry: " + row.Subject,
		Body:    b.String(),
	}
}

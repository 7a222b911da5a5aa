package email

import (
	"bytes"
	"context"
	"html/template"

	"github.com/rs/zerolog/log"
)

// Sender delivers a rendered template to a recipient
type Sender interface {
	SendTemplate(ctx context.Context, to, toName, subject, templateName string, data interface{}) error
}

// Service renders email templates and delivers them via SendGrid.
// With no API key configured it only logs the send, which keeps local
// development and tests free of outbound traffic.
type Service struct {
	client       *SendGridClient
	templates    map[string]*template.Template
	baseTemplate *template.Template
	logOnly      bool
}

// NewService creates email service
func NewService(config SendGridConfig) *Service {
	s := &Service{
		client:    NewSendGridClient(config),
		templates: make(map[string]*template.Template),
		logOnly:   config.APIKey == "",
	}

	s.baseTemplate, _ = template.New("base").Parse(BaseTemplate)
	s.loadTemplates()

	return s
}

func (s *Service) loadTemplates() {
	templates := map[string]string{
		"booking_rescheduled": RescheduleTemplate,
		"booking_decision":    DecisionTemplate,
	}

	for name, content := range templates {
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse email template")
			continue
		}
		s.templates[name] = tmpl
	}
}

// SendTemplate renders the named template and sends it
func (s *Service) SendTemplate(ctx context.Context, to, toName, subject, templateName string, data interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		log.Warn().Str("template", templateName).Msg("Template not found")
		return nil
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, data); err != nil {
		return err
	}

	var htmlBuf bytes.Buffer
	if err := s.baseTemplate.Execute(&htmlBuf, map[string]interface{}{
		"Content": template.HTML(contentBuf.String()),
	}); err != nil {
		return err
	}

	if s.logOnly {
		log.Info().
			Str("to", to).
			Str("subject", subject).
			Str("template", templateName).
			Msg("Email delivery disabled, logging instead")
		return nil
	}

	return s.client.Send(ctx, &Message{
		To:          to,
		ToName:      toName,
		Subject:     subject,
		HTMLContent: htmlBuf.String(),
	})
}

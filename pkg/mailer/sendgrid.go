// Package mailer delivers finished programs to clients and failure notices
// to the operator through SendGrid.
package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/justinhuttinger/dayone/pkg/clubs"
	"github.com/justinhuttinger/dayone/pkg/ghl"
)

const defaultHost = "https://api.sendgrid.com"

// Mailer sends on behalf of whichever club the webhook resolved; operator
// notices always use the service-wide from/admin addresses.
type Mailer struct {
	APIKey     string
	Host       string
	FromEmail  string
	AdminEmail string
}

func New(apiKey, fromEmail, adminEmail string) *Mailer {
	return &Mailer{
		APIKey:     apiKey,
		Host:       defaultHost,
		FromEmail:  fromEmail,
		AdminEmail: adminEmail,
	}
}

// SendProgram emails the PDF to the client with the club as the sender.
func (m *Mailer) SendProgram(ctx context.Context, contact *ghl.Contact, club *clubs.ClubConfig, pdf []byte) error {
	msg := buildProgramMessage(contact, club, pdf)
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send program email: %w", err)
	}
	return nil
}

// NotifyError tells the admin a generation run failed for a contact.
func (m *Mailer) NotifyError(ctx context.Context, runErr error, contactID string, club *clubs.ClubConfig) error {
	msg := buildErrorMessage(runErr, contactID, club, m.FromEmail, m.AdminEmail)
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send error notification: %w", err)
	}
	return nil
}

func (m *Mailer) send(ctx context.Context, msg *mail.SGMailV3) error {
	request := sendgrid.GetRequest(m.APIKey, "/v3/mail/send", m.Host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(msg)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func buildProgramMessage(contact *ghl.Contact, club *clubs.ClubConfig, pdf []byte) *mail.SGMailV3 {
	from := mail.NewEmail(club.FromName, club.FromEmail)
	to := mail.NewEmail(contact.Name, contact.Email)
	subject := fmt.Sprintf("Your Personalized Training Program - %s", contact.FirstName)

	plain := fmt.Sprintf(
		"Hi %s,\n\nYour customized training program from %s is attached. Please review it carefully and reach out if you have any questions.\n\nLet's crush these goals!\n\n%s",
		contact.FirstName, club.FromName, club.FromName)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your customized training program from <strong>%s</strong> is attached. Please review it carefully and reach out if you have any questions.</p><p><strong>Let's crush these goals!</strong></p><p>%s</p>",
		contact.FirstName, club.FromName, club.FromName)

	msg := mail.NewSingleEmail(from, subject, to, plain, html)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdf))
	attachment.SetType("application/pdf")
	attachment.SetFilename(fmt.Sprintf("Training_Program_%s_%s.pdf", contact.FirstName, contact.LastName))
	attachment.SetDisposition("attachment")
	msg.AddAttachment(attachment)

	return msg
}

func buildErrorMessage(runErr error, contactID string, club *clubs.ClubConfig, fromEmail, adminEmail string) *mail.SGMailV3 {
	from := mail.NewEmail("", fromEmail)
	to := mail.NewEmail("", adminEmail)
	subject := fmt.Sprintf("PT Program Generator Error - %s", club.ClubName)
	body := fmt.Sprintf("Error generating program for contact %s at %s (%d):\n\n%v",
		contactID, club.ClubName, club.ClubNumber, runErr)

	return mail.NewSingleEmailPlainText(from, subject, to, body)
}

// Package pipeline runs a webhook submission end to end: contact lookup, AI
// generation, rendering, PDF conversion, upload, and client email.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/justinhuttinger/dayone/pkg/clubs"
	"github.com/justinhuttinger/dayone/pkg/ghl"
	"github.com/justinhuttinger/dayone/pkg/infrastructure/sentry"
	"github.com/justinhuttinger/dayone/pkg/intake"
	"github.com/justinhuttinger/dayone/pkg/program"
)

type ContactDirectory interface {
	FetchContact(ctx context.Context, contactID string, club *clubs.ClubConfig) (*ghl.Contact, error)
}

type Uploader interface {
	UploadPDF(ctx context.Context, contactID string, club *clubs.ClubConfig, pdf []byte, contact *ghl.Contact) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

type Mailer interface {
	SendProgram(ctx context.Context, contact *ghl.Contact, club *clubs.ClubConfig, pdf []byte) error
	NotifyError(ctx context.Context, runErr error, contactID string, club *clubs.ClubConfig) error
}

// Pipeline wires the collaborators for one deployment. SkipUpload drops the
// CRM upload step for fire-and-forget deployments where no success page will
// ever ask for the URL.
type Pipeline struct {
	Contacts   ContactDirectory
	Generator  Generator
	Renderer   *program.Renderer
	Converter  Converter
	Uploader   Uploader
	Mailer     Mailer
	Logger     *slog.Logger
	SkipUpload bool
}

// Run generates and delivers one program. It returns the uploaded PDF URL,
// or "" when SkipUpload is set. On failure it notifies the admin
// best-effort, reports to Sentry, and returns the original error.
func (p *Pipeline) Run(ctx context.Context, contactID string, club *clubs.ClubConfig, form intake.FormData) (string, error) {
	logger := p.Logger.With(
		"execution_id", uuid.New().String(),
		"contact_id", contactID,
		"club", club.ClubName,
	)

	pdfURL, err := p.run(ctx, logger, contactID, club, form)
	if err != nil {
		logger.Error("Program generation failed", "error", err)
		sentry.CaptureException(err, map[string]interface{}{
			"contact_id": contactID,
			"club":       club.ClubName,
		}, logger)
		if notifyErr := p.Mailer.NotifyError(ctx, err, contactID, club); notifyErr != nil {
			logger.Error("Failed to send error notification", "error", notifyErr)
		}
		return "", err
	}
	return pdfURL, nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, contactID string, club *clubs.ClubConfig, form intake.FormData) (string, error) {
	contact, err := p.Contacts.FetchContact(ctx, contactID, club)
	if err != nil {
		return "", fmt.Errorf("failed to fetch contact: %w", err)
	}
	logger.Info("Fetched contact", "name", contact.Name, "email", contact.Email)

	prompt := program.BuildPrompt(contact, form)
	raw, err := p.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate program: %w", err)
	}
	content := program.ParseResponse(raw)
	logger.Info("Program generated", "structured", len(content.Workouts()) > 0)

	content.TrainerName = form.TrainerName
	// Always attached for the printed PDF, with explicit negatives.
	content.MedicalScreening = &program.MedicalScreening{
		HeartCondition:           orNo(form.HeartCondition),
		ChestPain:                orNo(form.ChestPain),
		BoneJointProblem:         orNo(form.BoneJointProblem),
		BloodPressureMedication:  orNo(form.BloodPressureMedication),
		MedicalSupervisionNeeded: orNo(form.MedicalSupervisionNeeded),
	}

	html := p.Renderer.RenderHTML(contact, content)
	pdf, err := p.Converter.Convert(ctx, html)
	if err != nil {
		return "", fmt.Errorf("failed to create PDF: %w", err)
	}
	logger.Info("PDF created", "bytes", len(pdf))

	pdfURL := ""
	if !p.SkipUpload {
		pdfURL, err = p.Uploader.UploadPDF(ctx, contactID, club, pdf, contact)
		if err != nil {
			return "", fmt.Errorf("failed to upload PDF: %w", err)
		}
		logger.Info("PDF uploaded", "url", pdfURL)
	}

	if err := p.Mailer.SendProgram(ctx, contact, club, pdf); err != nil {
		return "", fmt.Errorf("failed to email program: %w", err)
	}
	logger.Info("Program sent", "email", contact.Email)

	return pdfURL, nil
}

func orNo(answer string) string {
	if answer == "" {
		return "No"
	}
	return answer
}

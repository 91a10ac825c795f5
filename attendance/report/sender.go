package report

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"atiempo.app/atiempo/infrastructure/communication"
	"atiempo.app/atiempo/infrastructure/filesystem"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Artifact is a finished workbook ready for delivery.
type Artifact struct {
	Filename   string
	EmployeeID string
	Month      string
	Year       int
	Content    []byte
}

// Sender delivers a finished report to wherever HR reads it.
type Sender interface {
	Deliver(ctx context.Context, artifact Artifact, recipients []string) (location string, err error)
}

// S3EmailSender uploads the workbook to S3 and mails it out through SES.
type S3EmailSender struct {
	Bucket string
	From   string
	Slack  *communication.Slack
}

func (s *S3EmailSender) Deliver(ctx context.Context, artifact Artifact, recipients []string) (string, error) {
	key := fmt.Sprintf("reports/%s/%d/%s/%s", artifact.EmployeeID, artifact.Year, artifact.Month, artifact.Filename)
	if err := filesystem.WriteFile(s.Bucket, key, ctx, bytes.NewReader(artifact.Content), xlsxContentType); err != nil {
		s.notifyFailure(fmt.Sprintf("report upload failed for %s %s/%d: %v", artifact.EmployeeID, artifact.Month, artifact.Year, err))
		return "", err
	}
	location := fmt.Sprintf("s3://%s/%s", s.Bucket, key)

	if len(recipients) == 0 {
		return location, nil
	}

	info := &communication.EmailInfo{
		From:    s.From,
		To:      recipients,
		Subject: fmt.Sprintf("Informe de asistencia %s %d", artifact.Month, artifact.Year),
		Text:    fmt.Sprintf("Adjunto el informe de asistencia de %s para %s %d.", artifact.EmployeeID, artifact.Month, artifact.Year),
		Attachments: []communication.EmailAttachment{
			{
				Filename:    artifact.Filename,
				ContentType: xlsxContentType,
				Content:     artifact.Content,
			},
		},
	}
	if err := communication.SendEmail(ctx, info); err != nil {
		s.notifyFailure(fmt.Sprintf("report email failed for %s %s/%d: %v", artifact.EmployeeID, artifact.Month, artifact.Year, err))
		return location, err
	}

	return location, nil
}

func (s *S3EmailSender) notifyFailure(message string) {
	if s.Slack == nil {
		return
	}
	if err := s.Slack.Error(message); err != nil {
		log.Printf("[WARN] slack notification failed: %v", err)
	}
}

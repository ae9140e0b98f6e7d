package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var reportDay = time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)

func messageText(t *testing.T, cfg EmailConfig) string {
	t.Helper()
	m, err := buildReportMessage(cfg, "<html><body>report</body></html>", reportDay)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestBuildReportMessageHeaders(t *testing.T) {
	raw := messageText(t, EmailConfig{
		From: "noreply@yourcompany.com",
		To:   "a@x.com;b@x.com",
		CC:   "",
	})

	require.Contains(t, raw, "From: noreply@yourcompany.com")
	require.Contains(t, raw, "To: a@x.com, b@x.com")
	require.Contains(t, raw, "Subject: Agent QA Score Report for 2025-11-06")
	require.Contains(t, raw, "Message-ID: <")
	require.Contains(t, raw, "Content-Type: text/html")
	require.NotContains(t, raw, "Cc:")
}

func TestBuildReportMessageWithCc(t *testing.T) {
	raw := messageText(t, EmailConfig{
		From: "noreply@yourcompany.com",
		To:   "a@x.com",
		CC:   " c@x.com ; d@x.com ;",
	})

	require.Contains(t, raw, "To: a@x.com")
	require.Contains(t, raw, "Cc: c@x.com, d@x.com")
}

func TestBuildReportMessageEmptyTo(t *testing.T) {
	_, err := buildReportMessage(EmailConfig{From: "noreply@yourcompany.com", To: " ; "}, "<html></html>", reportDay)
	require.ErrorIs(t, err, errNoRecipients)
}

// sendReport must fail on an empty recipient list before any SMTP dial.
func TestSendReportEmptyRecipients(t *testing.T) {
	cfg := &Config{
		SMTP: SMTPConfig{
			Server:      "smtp.invalid",
			Port:        587,
			UID:         "reports",
			PasswordB64: "c2VjcmV0",
			UseSTARTTLS: true,
		},
		Emails: EmailConfig{From: "noreply@yourcompany.com", To: " ; "},
	}
	err := sendReport(cfg, "<html></html>", reportDay)
	require.ErrorIs(t, err, errNoRecipients)
}

package main

import (
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var errNoRecipients = errors.New("no TO recipients configured in report_emails")

const subjectDateLayout = "2006-01-02"

// buildReportMessage assembles the outgoing mail. The To header carries only
// TO addresses and the Cc header only CC addresses; gomail derives the
// envelope recipients from both.
func buildReportMessage(cfg EmailConfig, htmlBody string, reportDate time.Time) (*gomail.Message, error) {
	to := splitAddressList(cfg.To)
	if len(to) == 0 {
		return nil, errNoRecipients
	}
	cc := splitAddressList(cfg.CC)

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to...)
	if len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	m.SetHeader("Subject", fmt.Sprintf("Agent QA Score Report for %s", reportDate.Format(subjectDateLayout)))
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@agent-qa-report>", uuid.New()))
	m.SetBody("text/html", htmlBody)
	return m, nil
}

// sendReport delivers the rendered report in a single scoped SMTP
// transaction. No send is attempted when the recipient list is empty.
func sendReport(cfg *Config, htmlBody string, reportDate time.Time) error {
	m, err := buildReportMessage(cfg.Emails, htmlBody, reportDate)
	if err != nil {
		return err
	}

	password, err := cfg.SMTP.decodePassword()
	if err != nil {
		return err
	}

	d := gomail.NewDialer(cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTP.UID, password)
	if cfg.SMTP.UseSTARTTLS {
		d.TLSConfig = &tls.Config{ServerName: cfg.SMTP.Server}
	}

	log.Infof("Connecting to SMTP server %s:%d...", cfg.SMTP.Server, cfg.SMTP.Port)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	return nil
}

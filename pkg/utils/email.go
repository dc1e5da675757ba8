package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	From     string
	Password string
	Host     string
	Port     int
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != "" && c.Port > 0
}

func SendEmail(cfg SMTPConfig, to, subject, body string, attachments ...string) error {
	if !cfg.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	for _, filePath := range attachments {
		if _, err := os.Stat(filePath); err != nil {
			Logger.Warnf("Attachment not found, skipping: %s", filePath)
			continue
		}
		msg.Attach(filePath, gomail.Rename(filepath.Base(filePath)))
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		Logger.Errorf("failed to send email to %s", to)
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

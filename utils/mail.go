package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

type EmailData struct {
	Name    string
	Message string
	Code    string
}

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif;">
    <p>Hi {{.Name}},</p>
    <p>{{.Message}}</p>
    <h2 style="letter-spacing: 4px;">{{.Code}}</h2>
    <p>If you did not request this, you can ignore this email.</p>
  </body>
</html>`))

func SendEmail(emailTo string, emailSubject string, data EmailData, tmpl *template.Template) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailTo,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SMTPMailer delivers password reset codes. When SMTP_ADDRESS is unset the
// code is only logged, which keeps local development usable.
type SMTPMailer struct{}

func (SMTPMailer) SendOTP(email, name, code string) error {
	if os.Getenv("SMTP_ADDRESS") == "" {
		LogEvent(LogFields{Component: "mail", Step: "send_otp", Status: "skipped", Message: "smtp not configured for " + email})
		return nil
	}
	data := EmailData{
		Name:    name,
		Message: "Use the code below to reset your password. It expires in a few minutes.",
		Code:    code,
	}
	return SendEmail(email, "Password Reset Code", data, otpTemplate)
}

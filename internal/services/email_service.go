package services

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"studyhub/internal/config"
)

var resetEmailTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Password Reset - StudyHub</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #3B82F6;">Hello, {{.UserName}}!</h2>
    <p>You requested a password reset for your StudyHub account.</p>
    <p>Click the button below to choose a new password:</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.ResetURL}}" style="background-color: #3B82F6; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
    </div>
    <p><strong>Note:</strong> this link expires in 30 minutes.</p>
    <p>If you did not request this reset, you can safely ignore this email.</p>
    <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
    <p style="font-size: 12px; color: #666;">StudyHub - Study Organization</p>
  </div>
</body>
</html>`))

// emailService dispatches transactional email over SMTP.
type emailService struct {
	cfg *config.Config
}

// NewEmailService creates a new Mailer.
func NewEmailService(cfg *config.Config) Mailer {
	return &emailService{cfg: cfg}
}

// SendPasswordResetEmail sends the reset link for the given token. The link
// points at the frontend, which posts the token back to reset-password.
func (s *emailService) SendPasswordResetEmail(toEmail, userName, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, resetToken)

	var html bytes.Buffer
	if err := resetEmailTemplate.Execute(&html, struct {
		UserName string
		ResetURL string
	}{UserName: userName, ResetURL: resetURL}); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	text := fmt.Sprintf(`Hello, %s!

You requested a password reset for your StudyHub account.

Open the link below to choose a new password:
%s

Note: this link expires in 30 minutes.

If you did not request this reset, you can safely ignore this email.

StudyHub - Study Organization`, userName, resetURL)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.SMTPFromEmail, s.cfg.SMTPFromName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Password Reset - StudyHub")
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html.String())

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

package service

import (
	"course_market_backend/internal/config"
	"course_market_backend/pkg/logger"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// MailService sends notification mail over SMTP. Sends happen in goroutines
// fired by the calling service; a failure is logged and never surfaced to the
// API caller.
type MailService struct {
	Cfg *config.MailConfig
}

func NewMailService(cfg *config.Config) *MailService {
	return &MailService{Cfg: &cfg.Mail}
}

func (s *MailService) send(to []string, subject, htmlBody string) error {
	if !s.Cfg.Enabled {
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Course Market <%s>\r\n", s.Cfg.Sender)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", s.Cfg.Sender, s.Cfg.Password, s.Cfg.Host)
	return smtp.SendMail(s.Cfg.Host+":"+s.Cfg.Port, auth, s.Cfg.Sender, to, []byte(msg))
}

// SendEnrollmentConfirmation is fire-and-forget.
func (s *MailService) SendEnrollmentConfirmation(email, fullName, courseTitle string) {
	go func() {
		body := mailTemplate("Enrollment Confirmed", fmt.Sprintf(
			`<h2>Hi %s,</h2>
			<p>You have successfully enrolled in <strong>%s</strong>.</p>
			<p>Head to your dashboard to start learning.</p>`,
			fullName, courseTitle))
		if err := s.send([]string{email}, "You are enrolled in "+courseTitle, body); err != nil {
			logger.Log.Error("Failed to send enrollment mail", zap.String("email", email), zap.Error(err))
		}
	}()
}

// SendCertificateIssued is fire-and-forget.
func (s *MailService) SendCertificateIssued(email, fullName, courseTitle, certificateURL string) {
	go func() {
		body := mailTemplate("Congratulations!", fmt.Sprintf(
			`<h2>Well done, %s!</h2>
			<p>You completed <strong>%s</strong> and earned a certificate.</p>
			<p><a class="btn" href="%s">View your certificate</a></p>`,
			fullName, courseTitle, certificateURL))
		if err := s.send([]string{email}, "Your certificate for "+courseTitle, body); err != nil {
			logger.Log.Error("Failed to send certificate mail", zap.String("email", email), zap.Error(err))
		}
	}()
}

func mailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #4C1D95; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1F2937; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #7C3AED; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">Course Market &middot; automated message, do not reply</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

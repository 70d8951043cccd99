package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/anirbansen/credit-insight/internal/config"
	"github.com/anirbansen/credit-insight/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendRiskAlert notifies the configured recipient that a subject's analysis
// crossed the delinquency alert threshold.
func (s *Sender) SendRiskAlert(to, subjectID string, worstDPD int, worstTradelineID string, trend models.TrendDirection) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("High-risk credit profile: subject %s", subjectID)

	body := fmt.Sprintf(
		"Subject %s was flagged during analysis on %s.\n\n"+
			"Worst tradeline: %s\n"+
			"Maximum DPD observed: %d days\n"+
			"Score trend: %s\n\n"+
			"See the latest analysis result for the full breakdown.\n",
		subjectID, time.Now().Format("2006-01-02 15:04:05"), worstTradelineID, worstDPD, trend,
	)
	body += "\nCredit Insight"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send risk alert to %s: %v", to, err)
		return fmt.Errorf("failed to send risk alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// SendBatchSummary reports the outcome of a scheduled batch run.
func (s *Sender) SendBatchSummary(to string, analyzed, failed int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Scheduled credit analysis summary"

	body := fmt.Sprintf(
		"Scheduled analysis completed at %s.\n\n"+
			"Subjects analyzed: %d\n"+
			"Failures: %d\n",
		time.Now().Format("2006-01-02 15:04:05"), analyzed, failed,
	)
	body += "\nCredit Insight"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send batch summary to %s: %v", to, err)
		return fmt.Errorf("failed to send batch summary: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

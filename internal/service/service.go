package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/anirbansen/credit-insight/internal/config"
	"github.com/anirbansen/credit-insight/internal/engine"
	"github.com/anirbansen/credit-insight/internal/models"
	"github.com/anirbansen/credit-insight/internal/parser"
	"github.com/anirbansen/credit-insight/internal/repository"
	"github.com/anirbansen/credit-insight/internal/utils/email"
)

// riskAlertDPD is the worst-tradeline DPD at which an alert mail goes out.
const riskAlertDPD = 90

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	eng    *engine.Engine
	mailer *email.Sender // nil when SMTP is not configured
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, eng *engine.Engine, mailer *email.Sender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, eng: eng, mailer: mailer, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, emailAddr, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(emailAddr, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(emailAddr)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// IngestReport parses a raw bureau XML report and stores its tradelines and
// score snapshot for the subject.
func (s *Service) IngestReport(ctx context.Context, subjectID string, raw []byte) (*models.BureauReport, error) {
	report, err := parser.ParseReport(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report for subject %s: %w", subjectID, err)
	}
	if err := s.repo.SaveReport(subjectID, report); err != nil {
		return nil, err
	}
	s.log.Infof("Ingested %s report for subject %s: %d tradelines", report.Bureau, subjectID, len(report.Tradelines))
	return report, nil
}

// AnalyzeSubject runs the engine over a subject's stored data, persists the
// result and sends a risk alert when the worst tradeline crosses the alert
// threshold.
func (s *Service) AnalyzeSubject(ctx context.Context, subjectID string) (*models.SubjectAnalysisResult, error) {
	subject, err := s.repo.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	if len(subject.Tradelines) == 0 && len(subject.ScoreHistory) == 0 {
		return nil, fmt.Errorf("no data for subject %s", subjectID)
	}

	result := s.eng.Analyze(*subject)
	if err := s.repo.SaveAnalysisResult(&result); err != nil {
		return nil, err
	}

	if s.mailer != nil && s.config.AlertEmail != "" && result.WorstDPDDefined && result.WorstDPD >= riskAlertDPD {
		if err := s.mailer.SendRiskAlert(s.config.AlertEmail, subjectID, result.WorstDPD, result.WorstTradelineID, result.Trend.Direction); err != nil {
			s.log.Errorf("Failed to send risk alert for subject %s: %v", subjectID, err)
		}
	}

	s.log.Infof("Analyzed subject %s: worst DPD %d, trend %s, %d skipped",
		subjectID, result.WorstDPD, result.Trend.Direction, len(result.Diagnostics.Skipped))
	return &result, nil
}

// GetLatestAnalysis returns the most recent stored result for a subject.
func (s *Service) GetLatestAnalysis(ctx context.Context, subjectID string) (*models.SubjectAnalysisResult, error) {
	return s.repo.GetLatestResult(subjectID)
}

// RunScheduledAnalyses re-analyzes every known subject. One subject's
// failure never stops the batch.
func (s *Service) RunScheduledAnalyses(ctx context.Context) {
	ids, err := s.repo.ListSubjectIDs()
	if err != nil {
		s.log.Errorf("Scheduled analysis aborted: %v", err)
		return
	}
	failed := 0
	for _, id := range ids {
		if _, err := s.AnalyzeSubject(ctx, id); err != nil {
			s.log.Errorf("Scheduled analysis failed for subject %s: %v", id, err)
			failed++
		}
	}
	s.log.Infof("Scheduled analysis finished: %d subjects, %d failed", len(ids), failed)

	if s.mailer != nil && s.config.AlertEmail != "" {
		if err := s.mailer.SendBatchSummary(s.config.AlertEmail, len(ids), failed); err != nil {
			s.log.Errorf("Failed to send batch summary: %v", err)
		}
	}
}

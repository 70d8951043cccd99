package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anirbansen/credit-insight/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO credit.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM credit.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveReport stores a parsed bureau report: the score snapshot (last write
// wins per subject, bureau and pull date) and the tradelines, which replace
// any earlier set from the same bureau.
func (r *Repository) SaveReport(subjectID string, report *models.BureauReport) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if report.Score != nil {
		query := `
			INSERT INTO credit.score_snapshots (subject_id, bureau, pulled_at, score, ingested_at)
			VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
			ON CONFLICT (subject_id, bureau, pulled_at)
			DO UPDATE SET score = EXCLUDED.score, ingested_at = CURRENT_TIMESTAMP`
		if _, err := tx.Exec(query, subjectID, report.Score.Bureau, report.Score.PulledAt, report.Score.Score); err != nil {
			return fmt.Errorf("failed to save score snapshot: %w", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM credit.tradelines WHERE subject_id = $1 AND bureau = $2`, subjectID, report.Bureau); err != nil {
		return fmt.Errorf("failed to clear tradelines: %w", err)
	}
	for _, tl := range report.Tradelines {
		history, err := json.Marshal(tl.History)
		if err != nil {
			return fmt.Errorf("failed to encode history for tradeline %s: %w", tl.ID, err)
		}
		query := `
			INSERT INTO credit.tradelines
				(subject_id, bureau, account_ref, account_type, account_status,
				 opened_date, closed_date, sanctioned_amt, disbursed_amt, current_bal, currency, history)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		_, err = tx.Exec(query, subjectID, report.Bureau, tl.ID, tl.AccountType, tl.AccountStatus,
			tl.OpenedDate, tl.ClosedDate, tl.SanctionedAmount, tl.DisbursedAmount, tl.CurrentBalance, tl.Currency, history)
		if err != nil {
			return fmt.Errorf("failed to save tradeline %s: %w", tl.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}
	return nil
}

// GetSubject assembles the engine input for one subject: all stored
// tradelines plus the full score history ordered by pull date.
func (r *Repository) GetSubject(subjectID string) (*models.Subject, error) {
	subject := &models.Subject{ID: subjectID}

	rows, err := r.db.Query(`
		SELECT account_ref, account_type, account_status, opened_date, closed_date,
		       sanctioned_amt, disbursed_amt, current_bal, currency, history
		FROM credit.tradelines
		WHERE subject_id = $1
		ORDER BY id`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tradelines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tl models.Tradeline
		var history []byte
		err := rows.Scan(&tl.ID, &tl.AccountType, &tl.AccountStatus, &tl.OpenedDate, &tl.ClosedDate,
			&tl.SanctionedAmount, &tl.DisbursedAmount, &tl.CurrentBalance, &tl.Currency, &history)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tradeline: %w", err)
		}
		if err := json.Unmarshal(history, &tl.History); err != nil {
			return nil, fmt.Errorf("failed to decode history for tradeline %s: %w", tl.ID, err)
		}
		subject.Tradelines = append(subject.Tradelines, tl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tradelines: %w", err)
	}

	scoreRows, err := r.db.Query(`
		SELECT bureau, pulled_at, score
		FROM credit.score_snapshots
		WHERE subject_id = $1
		ORDER BY pulled_at, ingested_at`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}
	defer scoreRows.Close()
	for scoreRows.Next() {
		var snap models.ScoreSnapshot
		if err := scoreRows.Scan(&snap.Bureau, &snap.PulledAt, &snap.Score); err != nil {
			return nil, fmt.Errorf("failed to scan score snapshot: %w", err)
		}
		subject.ScoreHistory = append(subject.ScoreHistory, snap)
	}
	if err := scoreRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read score history: %w", err)
	}

	return subject, nil
}

// SaveAnalysisResult persists one analysis run as JSON.
func (r *Repository) SaveAnalysisResult(result *models.SubjectAnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	query := `
		INSERT INTO credit.analysis_results (subject_id, generated_at, result)
		VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(query, result.SubjectID, result.GeneratedAt, payload); err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}
	return nil
}

// GetLatestResult returns the most recent analysis for a subject, or
// sql.ErrNoRows when none exists yet.
func (r *Repository) GetLatestResult(subjectID string) (*models.SubjectAnalysisResult, error) {
	var payload []byte
	var generatedAt time.Time
	query := `
		SELECT generated_at, result
		FROM credit.analysis_results
		WHERE subject_id = $1
		ORDER BY generated_at DESC
		LIMIT 1`
	if err := r.db.QueryRow(query, subjectID).Scan(&generatedAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load analysis result: %w", err)
	}
	result := &models.SubjectAnalysisResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	return result, nil
}

// ListSubjectIDs returns every subject with stored tradelines or scores,
// for the scheduled batch run.
func (r *Repository) ListSubjectIDs() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT subject_id FROM credit.tradelines
		UNION
		SELECT subject_id FROM credit.score_snapshots
		ORDER BY subject_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subject id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subjects: %w", err)
	}
	return ids, nil
}

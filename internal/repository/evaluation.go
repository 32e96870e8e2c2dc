// Package repository persists evaluation audit records in PostgreSQL.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
)

// EvaluationRepository handles evaluation record persistence
type EvaluationRepository struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *pgxpool.Pool, logger *logrus.Logger) *EvaluationRepository {
	return &EvaluationRepository{
		db:  db,
		log: logger,
	}
}

// Create inserts a new evaluation record into the database
func (r *EvaluationRepository) Create(ctx context.Context, record *domain.EvaluationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	warnings, err := json.Marshal(record.Warnings)
	if err != nil {
		return fmt.Errorf("marshaling warnings: %w", err)
	}

	query := `
		INSERT INTO evaluations (
			id, calculator_id, correlation_id, value, unit, interpretation, warnings
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err = r.db.Exec(ctx, query,
		record.ID,
		record.CalculatorID,
		record.CorrelationID,
		record.Value,
		record.Unit,
		record.Interpretation,
		warnings,
	)

	if err != nil {
		r.log.WithFields(logrus.Fields{
			"record_id":     record.ID,
			"calculator_id": record.CalculatorID,
			"error":         err,
		}).Error("Failed to create evaluation record")
		return fmt.Errorf("creating evaluation record: %w", err)
	}

	return nil
}

// GetByID retrieves an evaluation record by its ID
func (r *EvaluationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EvaluationRecord, error) {
	query := `
		SELECT id, calculator_id, correlation_id, value, unit, interpretation, warnings, created_at
		FROM evaluations
		WHERE id = $1`

	record, err := r.scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("evaluation record not found: %w", domain.ErrNotFound)
		}
		r.log.WithFields(logrus.Fields{
			"record_id": id,
			"error":     err,
		}).Error("Failed to get evaluation record by ID")
		return nil, fmt.Errorf("getting evaluation record by ID: %w", err)
	}

	return record, nil
}

// ListByCalculator retrieves evaluation records for a calculator with pagination,
// most recent first
func (r *EvaluationRepository) ListByCalculator(ctx context.Context, calculatorID string, limit, offset int) ([]*domain.EvaluationRecord, error) {
	query := `
		SELECT id, calculator_id, correlation_id, value, unit, interpretation, warnings, created_at
		FROM evaluations
		WHERE calculator_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, calculatorID, limit, offset)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"calculator_id": calculatorID,
			"error":         err,
		}).Error("Failed to list evaluation records")
		return nil, fmt.Errorf("listing evaluation records: %w", err)
	}
	defer rows.Close()

	var records []*domain.EvaluationRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"calculator_id": calculatorID,
				"error":         err,
			}).Error("Failed to scan evaluation record row")
			return nil, fmt.Errorf("scanning evaluation record row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evaluation record rows: %w", err)
	}

	return records, nil
}

// CountByCalculator returns the number of stored records for a calculator
func (r *EvaluationRepository) CountByCalculator(ctx context.Context, calculatorID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM evaluations WHERE calculator_id = $1`,
		calculatorID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting evaluation records: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes records created before the cutoff and returns how
// many were deleted
func (r *EvaluationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM evaluations WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"cutoff": cutoff,
			"error":  err,
		}).Error("Failed to prune evaluation records")
		return 0, fmt.Errorf("pruning evaluation records: %w", err)
	}

	deleted := result.RowsAffected()
	if deleted > 0 {
		r.log.WithFields(logrus.Fields{
			"cutoff":  cutoff,
			"deleted": deleted,
		}).Info("Pruned evaluation records")
	}

	return deleted, nil
}

func (r *EvaluationRepository) scanRecord(row pgx.Row) (*domain.EvaluationRecord, error) {
	var record domain.EvaluationRecord
	var warnings []byte

	err := row.Scan(
		&record.ID,
		&record.CalculatorID,
		&record.CorrelationID,
		&record.Value,
		&record.Unit,
		&record.Interpretation,
		&warnings,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &record.Warnings); err != nil {
			return nil, fmt.Errorf("unmarshaling warnings: %w", err)
		}
	}

	return &record, nil
}

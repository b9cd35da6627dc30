package repository

import (
	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/nexalink/lead-manager-api/infrastructure/database/postgres"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/pkg/errors"
)

const submissionsTable = "submissions"

var submissionColumns = []string{
	"id", "lead_id", "reference", "status", "response_code",
	"retry_count", "error_message", "response_body", "created_at",
}

type SubmissionRepository interface {
	CreateSubmission(submission *domain.Submission) (*domain.Submission, error)
	ListSubmissions() ([]*domain.Submission, error)
}

type submissionRepository struct {
	conn *postgres.Connection
}

func NewSubmissionRepository(conn *postgres.Connection) SubmissionRepository {
	return &submissionRepository{
		conn: conn,
	}
}

func (r *submissionRepository) CreateSubmission(submission *domain.Submission) (*domain.Submission, error) {
	queryBuilder := squirrel.
		Insert(submissionsTable).
		Columns("lead_id", "reference", "status", "response_code", "retry_count", "error_message", "response_body").
		Values(
			submission.LeadID,
			submission.Reference,
			submission.Status,
			submission.ResponseCode,
			submission.RetryCount,
			submission.ErrorMessage,
			submission.ResponseBody,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	submissionSQL, submissionArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(submissionSQL, submissionArgs...).Scan(&submission.ID, &submission.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "inserting submission")
	}

	return submission, nil
}

func (r *submissionRepository) ListSubmissions() ([]*domain.Submission, error) {
	queryBuilder := squirrel.
		Select(submissionColumns...).
		From(submissionsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	submissionSQL, submissionArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(submissionSQL, submissionArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "listing submissions")
	}
	defer rows.Close()

	var submissions []*domain.Submission
	for rows.Next() {
		var submission domain.Submission
		if err := rows.Scan(
			&submission.ID,
			&submission.LeadID,
			&submission.Reference,
			&submission.Status,
			&submission.ResponseCode,
			&submission.RetryCount,
			&submission.ErrorMessage,
			&submission.ResponseBody,
			&submission.CreatedAt,
		); err != nil {
			return nil, err
		}

		submissions = append(submissions, &submission)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/nexalink/lead-manager-api/infrastructure/database/postgres"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/pkg/errors"
)

const metricsSnapshotsTable = "metrics_snapshots"

type MetricsSnapshotRepository interface {
	SaveSnapshot(summary *domain.DashboardSummary) (*domain.MetricsSnapshot, error)
	GetLatestSnapshot() (*domain.MetricsSnapshot, error)
}

type metricsSnapshotRepository struct {
	conn *postgres.Connection
}

func NewMetricsSnapshotRepository(conn *postgres.Connection) MetricsSnapshotRepository {
	return &metricsSnapshotRepository{
		conn: conn,
	}
}

func (r *metricsSnapshotRepository) SaveSnapshot(summary *domain.DashboardSummary) (*domain.MetricsSnapshot, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, errors.Wrap(err, "encoding snapshot payload")
	}

	queryBuilder := squirrel.
		Insert(metricsSnapshotsTable).
		Columns("summary").
		Values(payload).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	snapshotSQL, snapshotArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	snapshot := &domain.MetricsSnapshot{Summary: *summary}
	err = r.conn.QueryRow(snapshotSQL, snapshotArgs...).Scan(&snapshot.ID, &snapshot.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "inserting metrics snapshot")
	}

	return snapshot, nil
}

func (r *metricsSnapshotRepository) GetLatestSnapshot() (*domain.MetricsSnapshot, error) {
	queryBuilder := squirrel.
		Select("id", "summary", "created_at").
		From(metricsSnapshotsTable).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	snapshotSQL, snapshotArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		snapshot domain.MetricsSnapshot
		payload  []byte
	)
	err = r.conn.QueryRow(snapshotSQL, snapshotArgs...).Scan(&snapshot.ID, &payload, &snapshot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(payload, &snapshot.Summary); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot payload")
	}

	return &snapshot, nil
}

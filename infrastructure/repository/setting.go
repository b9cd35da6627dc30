package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/nexalink/lead-manager-api/infrastructure/database/postgres"
	"github.com/nexalink/lead-manager-api/internal/domain"
	"github.com/pkg/errors"
)

const settingsTable = "settings"

type SettingRepository interface {
	ListSettings() ([]*domain.Setting, error)
	GetSetting(key string) (*domain.Setting, error)
	UpsertSetting(setting *domain.Setting) error
}

type settingRepository struct {
	conn *postgres.Connection
}

func NewSettingRepository(conn *postgres.Connection) SettingRepository {
	return &settingRepository{
		conn: conn,
	}
}

func (r *settingRepository) ListSettings() ([]*domain.Setting, error) {
	queryBuilder := squirrel.
		Select("key", "value", "description", "updated_at").
		From(settingsTable).
		OrderBy("key ASC").
		PlaceholderFormat(squirrel.Dollar)

	settingSQL, settingArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(settingSQL, settingArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "listing settings")
	}
	defer rows.Close()

	var settings []*domain.Setting
	for rows.Next() {
		var setting domain.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.Description, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &setting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *settingRepository) GetSetting(key string) (*domain.Setting, error) {
	queryBuilder := squirrel.
		Select("key", "value", "description", "updated_at").
		From(settingsTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar)

	settingSQL, settingArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var setting domain.Setting
	err = r.conn.QueryRow(settingSQL, settingArgs...).Scan(
		&setting.Key,
		&setting.Value,
		&setting.Description,
		&setting.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &setting, nil
}

func (r *settingRepository) UpsertSetting(setting *domain.Setting) error {
	queryBuilder := squirrel.
		Insert(settingsTable).
		Columns("key", "value", "description", "updated_at").
		Values(setting.Key, setting.Value, setting.Description, time.Now()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	settingSQL, settingArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(settingSQL, settingArgs...)
	if err != nil {
		return errors.Wrap(err, "upserting setting")
	}

	return nil
}

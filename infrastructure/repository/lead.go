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

const leadsTable = "leads"

var leadColumns = []string{
	"id", "customer_name", "phone", "email", "source", "tag",
	"status", "preferred_package", "created_at", "updated_at",
}

type LeadRepository interface {
	CreateLead(lead *domain.Lead) (*domain.Lead, error)
	GetLeadByID(id int) (*domain.Lead, error)
	ListLeads() ([]*domain.Lead, error)
	UpdateLeadStatus(id int, status domain.LeadStatus) error
}

type leadRepository struct {
	conn *postgres.Connection
}

func NewLeadRepository(conn *postgres.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func (r *leadRepository) CreateLead(lead *domain.Lead) (*domain.Lead, error) {
	queryBuilder := squirrel.
		Insert(leadsTable).
		Columns("customer_name", "phone", "email", "source", "tag", "status", "preferred_package").
		Values(lead.CustomerName, lead.Phone, lead.Email, lead.Source, lead.Tag, lead.Status, lead.PreferredPackage).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	leadSQL, leadArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(leadSQL, leadArgs...).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "inserting lead")
	}

	return lead, nil
}

func (r *leadRepository) GetLeadByID(id int) (*domain.Lead, error) {
	queryBuilder := squirrel.
		Select(leadColumns...).
		From(leadsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	leadSQL, leadArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var lead domain.Lead
	err = r.conn.QueryRow(leadSQL, leadArgs...).Scan(
		&lead.ID,
		&lead.CustomerName,
		&lead.Phone,
		&lead.Email,
		&lead.Source,
		&lead.Tag,
		&lead.Status,
		&lead.PreferredPackage,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

func (r *leadRepository) ListLeads() ([]*domain.Lead, error) {
	queryBuilder := squirrel.
		Select(leadColumns...).
		From(leadsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	leadSQL, leadArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(leadSQL, leadArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "listing leads")
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.CustomerName,
			&lead.Phone,
			&lead.Email,
			&lead.Source,
			&lead.Tag,
			&lead.Status,
			&lead.PreferredPackage,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}

		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leads, nil
}

func (r *leadRepository) UpdateLeadStatus(id int, status domain.LeadStatus) error {
	queryBuilder := squirrel.
		Update(leadsTable).
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	leadSQL, leadArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.Exec(leadSQL, leadArgs...)
	if err != nil {
		return errors.Wrap(err, "updating lead status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

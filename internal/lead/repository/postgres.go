package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/lead/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const leadColumns = `id, product_id, product_name, seller_id, buyer_name, buyer_phone, amount, total_price,
        status, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, l *model.Lead) error {
	query := `
        INSERT INTO leads (
            id, product_id, product_name, seller_id, buyer_name, buyer_phone, amount, total_price,
            status, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :product_name, :seller_id, :buyer_name, :buyer_phone, :amount, :total_price,
            :status, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, l)
	return errors.Wrap(err, "lead repository: create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Lead, error) {
	var lead model.Lead
	err := r.DB.GetContext(ctx, &lead, `SELECT `+leadColumns+` FROM leads WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "lead repository: find by id")
	}
	return &lead, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.LeadFilters) ([]model.Lead, error) {
	leads := []model.Lead{}

	conditions := []string{"seller_id = :seller_id"}
	args := map[string]interface{}{"seller_id": f.SellerID}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = string(f.Status)
	}

	query, qargs, err := sqlx.Named(
		"SELECT "+leadColumns+" FROM leads WHERE "+strings.Join(conditions, " AND ")+" ORDER BY created_at DESC, id ASC",
		args,
	)
	if err != nil {
		return nil, errors.Wrap(err, "lead repository: bind list")
	}
	if err := r.DB.SelectContext(ctx, &leads, r.DB.Rebind(query), qargs...); err != nil {
		return nil, errors.Wrap(err, "lead repository: list")
	}
	return leads, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, l *model.Lead) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $1, updated_at = $2 WHERE id = $3 AND seller_id = $4`,
		string(l.Status), l.UpdatedAt, l.ID, l.SellerID)
	return errors.Wrap(err, "lead repository: update status")
}

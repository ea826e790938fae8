package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/seller/dto"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const sellerColumns = `id, email, name, company_name, inn, phone, website, region, rating,
        verification_status, is_blocked, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Seller, error) {
	var seller model.Seller
	err := r.DB.GetContext(ctx, &seller, `SELECT `+sellerColumns+` FROM sellers WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "seller repository: find by id")
	}
	return &seller, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SellerFilters) ([]model.Seller, int, error) {
	sellers := []model.Seller{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if search := strings.TrimSpace(f.Search); search != "" {
		conditions = append(conditions,
			"(name ILIKE :search OR company_name ILIKE :search OR email ILIKE :search OR inn ILIKE :search)")
		args["search"] = "%" + likeEscaper.Replace(search) + "%"
	}
	if f.Status != "" {
		conditions = append(conditions, "verification_status = :status")
		args["status"] = string(f.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM sellers"+whereClause, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "seller repository: bind count")
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "seller repository: count")
	}

	query := "SELECT " + sellerColumns + " FROM sellers" + whereClause + " ORDER BY created_at DESC, id ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "seller repository: bind list")
	}
	if err := r.DB.SelectContext(ctx, &sellers, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "seller repository: list")
	}
	return sellers, count, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, s *model.Seller) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sellers SET verification_status = $1, is_blocked = $2, updated_at = $3 WHERE id = $4`,
		string(s.VerificationStatus), s.IsBlocked, s.UpdatedAt, s.ID)
	if err != nil {
		return errors.Wrap(err, "seller repository: update status")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "seller repository: update status")
	}
	if rows == 0 {
		return errors.Wrapf(model.ErrNotFound, "seller %s", s.ID)
	}
	return nil
}

func (r *PGRepository) CountByStatus(ctx context.Context) (map[model.VerificationStatus]int, error) {
	var rows []struct {
		Status model.VerificationStatus `db:"verification_status"`
		Count  int                      `db:"count"`
	}
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT verification_status, count(*) AS count FROM sellers GROUP BY verification_status`)
	if err != nil {
		return nil, errors.Wrap(err, "seller repository: count by status")
	}

	counts := make(map[model.VerificationStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

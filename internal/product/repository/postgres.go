package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const productColumns = `id, seller_id, category_id, name, description, price, stock, image_url,
        specifications, tags, views, status, region, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, seller_id, category_id, name, description, price, stock, image_url,
            specifications, tags, views, status, region, created_at, updated_at
        )
        VALUES (
            :id, :seller_id, :category_id, :name, :description, :price, :stock, :image_url,
            :specifications, :tags, :views, :status, :region, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "product repository: create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "product repository: find by id")
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SnapshotFilter) ([]model.Product, error) {
	products := []model.Product{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SellerID != "" {
		conditions = append(conditions, "seller_id = :seller_id")
		args["seller_id"] = f.SellerID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = string(f.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query, qargs, err := sqlx.Named("SELECT "+productColumns+" FROM products"+whereClause, args)
	if err != nil {
		return nil, errors.Wrap(err, "product repository: bind snapshot")
	}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), qargs...); err != nil {
		return nil, errors.Wrap(err, "product repository: snapshot")
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            name = :name,
            description = :description,
            price = :price,
            stock = :stock,
            image_url = :image_url,
            specifications = :specifications,
            tags = :tags,
            region = :region,
            updated_at = :updated_at
        WHERE id = :id AND seller_id = :seller_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "product repository: update")
}

func (r *PGRepository) UpdateStatus(ctx context.Context, p *model.Product) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE products SET status = $1, updated_at = $2 WHERE id = $3`,
		string(p.Status), p.UpdatedAt, p.ID)
	return errors.Wrap(err, "product repository: update status")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return errors.Wrap(err, "product repository: delete")
}

func (r *PGRepository) IncrementViews(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE products SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "product repository: increment views")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "product repository: increment views")
	}
	if rows == 0 {
		return errors.Wrapf(model.ErrNotFound, "product %s", id)
	}
	return nil
}

// SearchNames is the SQL fallback for search suggestions when Elasticsearch is unavailable.
func (r *PGRepository) SearchNames(ctx context.Context, query string, limit int) ([]dto.Suggestion, error) {
	out := []dto.Suggestion{}
	err := r.DB.SelectContext(ctx, &out, `
        SELECT id, name FROM products
        WHERE status = $1 AND name ILIKE $2
        ORDER BY name ASC
        LIMIT $3
    `, string(model.ProductStatusActive), "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, errors.Wrap(err, "product repository: search names")
	}
	return out, nil
}

func (r *PGRepository) CountByStatus(ctx context.Context) (map[model.ProductStatus]int, error) {
	var rows []struct {
		Status model.ProductStatus `db:"status"`
		Count  int                 `db:"count"`
	}
	err := r.DB.SelectContext(ctx, &rows, `SELECT status, count(*) AS count FROM products GROUP BY status`)
	if err != nil {
		return nil, errors.Wrap(err, "product repository: count by status")
	}

	counts := make(map[model.ProductStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/category/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const categoryColumns = `id, parent_id, name, image_url, sort_order, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, parent_id, name, image_url, sort_order, created_at, updated_at)
        VALUES (:id, :parent_id, :name, :image_url, :sort_order, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "category repository: create")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "category repository: find by id")
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	categories := []model.Category{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM categories"+whereClause, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "category repository: bind count")
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "category repository: count")
	}

	query := "SELECT " + categoryColumns + " FROM categories" + whereClause + " ORDER BY sort_order ASC, name ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "category repository: bind list")
	}
	if err := r.DB.SelectContext(ctx, &categories, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "category repository: list")
	}

	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            name = :name,
            image_url = :image_url,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "category repository: update")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return errors.Wrap(err, "category repository: delete")
}

func (r *PGRepository) CountChildren(ctx context.Context, id string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM categories WHERE parent_id = $1", id)
	if err != nil {
		return 0, errors.Wrap(err, "category repository: count children")
	}
	return count, nil
}

func (r *PGRepository) CountProducts(ctx context.Context, id string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products WHERE category_id = $1", id)
	if err != nil {
		return 0, errors.Wrap(err, "category repository: count products")
	}
	return count, nil
}

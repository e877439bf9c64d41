package mariadb

import (
	"context"
	"database/sql"

	"github.com/fhuszti/assets-ms-go/internal/model"
	"github.com/fhuszti/assets-ms-go/internal/port"
)

type CategoryRepository struct {
	db *sql.DB
}

// compile-time check: *CategoryRepository must satisfy port.CategoryRepository
var _ port.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, alias FROM categories WHERE id = ?`, id)

	var c model.Category
	if err := row.Scan(&c.ID, &c.Title, &c.Alias); err != nil {
		return nil, err
	}
	return &c, nil
}

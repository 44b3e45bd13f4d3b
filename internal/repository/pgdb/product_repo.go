package pgdb

import (
	"context"
	"errors"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/repository/pgdb/converter"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует каталог и складской учёт поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = "model, category, price, arrival_date, details, quantity"

// FindByModel возвращает товар по модели; e.ErrProductNotFound при отсутствии.
func (p *ProductRepo) FindByModel(ctx context.Context, model string) (*domain.Product, error) {
	db := pickQuerier(ctx, p.pool)

	query := `SELECT ` + productColumns + ` FROM products WHERE model = $1`

	return p.scanProduct(db.QueryRow(ctx, query, model))
}

// FindByModelForUpdate читает товар с блокировкой строки.
// Допустим только внутри транзакции; остаток, прочитанный здесь,
// не изменится до конца транзакции.
func (p *ProductRepo) FindByModelForUpdate(ctx context.Context, model string) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE model = $1 FOR UPDATE`

	return p.scanProduct(tx.QueryRow(ctx, query, model))
}

// DecrementQuantity списывает amount единиц со склада.
func (p *ProductRepo) DecrementQuantity(ctx context.Context, model string, amount int) error {
	db := pickQuerier(ctx, p.pool)

	query := `UPDATE products SET quantity = quantity - $2 WHERE model = $1`

	res, err := db.Exec(ctx, query, model, amount)
	if err != nil {
		if postgresCheckViolation(err) {
			return e.ErrInsufficientStock
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// Create добавляет новый товар в каталог.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) error {
	db := pickQuerier(ctx, p.pool)

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (model, category, price, arrival_date, details, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := db.Exec(ctx, query,
		model.Model, model.Category, model.Price, model.ArrivalDate, model.Details, model.Quantity)
	if err != nil {
		if postgresDuplicate(err) {
			return e.ErrProductAlreadyExists
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ChangeQuantity изменяет остаток на delta и возвращает новое количество.
// Уход в минус останавливается CHECK-ограничением таблицы.
func (p *ProductRepo) ChangeQuantity(ctx context.Context, model string, delta int) (int, error) {
	db := pickQuerier(ctx, p.pool)

	query := `UPDATE products SET quantity = quantity + $2 WHERE model = $1 RETURNING quantity`

	var quantity int
	err := db.QueryRow(ctx, query, model, delta).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, e.ErrProductNotFound
		}
		if postgresCheckViolation(err) {
			return 0, e.ErrInsufficientStock
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return quantity, nil
}

// GetProducts возвращает товары, опционально фильтруя по категории и модели.
func (p *ProductRepo) GetProducts(ctx context.Context, category *domain.Category, model *string) ([]domain.Product, error) {
	db := pickQuerier(ctx, p.pool)

	query := `SELECT ` + productColumns + ` FROM products WHERE ($1::text IS NULL OR category = $1)
		AND ($2::text IS NULL OR model = $2) ORDER BY model`

	var categoryArg *string
	if category != nil {
		s := string(*category)
		categoryArg = &s
	}

	rows, err := db.Query(ctx, query, categoryArg, model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var m converter.ProductModel
		if err := rows.Scan(&m.Model, &m.Category, &m.Price, &m.ArrivalDate, &m.Details, &m.Quantity); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (p *ProductRepo) scanProduct(row pgx.Row) (*domain.Product, error) {
	var model converter.ProductModel
	err := row.Scan(&model.Model, &model.Category, &model.Price, &model.ArrivalDate, &model.Details, &model.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

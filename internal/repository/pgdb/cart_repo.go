package pgdb

import (
	"context"
	"errors"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/repository/pgdb/converter"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CartRepo реализует хранилище корзин поверх PostgreSQL.
// Инвариант «одна неоплаченная корзина на покупателя» дополнительно защищён
// частичным уникальным индексом uq_carts_customer_unpaid; позиции защищены
// UNIQUE(cart_id, model).
type CartRepo struct {
	pool *pgxpool.Pool
	conv converter.CartConverter
}

func NewCartRepo(pool *pgxpool.Pool, conv converter.CartConverter) *CartRepo {
	return &CartRepo{
		pool: pool,
		conv: conv,
	}
}

// GetUnpaidCart возвращает неоплаченную корзину покупателя вместе с позициями.
// Внутри транзакции строка корзины берётся с FOR UPDATE, сериализуя все
// конкурентные операции одного покупателя. Возвращает e.ErrCartNotFound,
// если неоплаченной корзины нет.
func (c *CartRepo) GetUnpaidCart(ctx context.Context, customer string) (*domain.Cart, error) {
	db := pickQuerier(ctx, c.pool)

	query := `
		SELECT id, customer, paid, payment_date, total
		FROM carts
		WHERE customer = $1 AND NOT paid
	`
	if inTx(ctx) {
		query += " FOR UPDATE"
	}

	var model converter.CartModel
	err := db.QueryRow(ctx, query, customer).
		Scan(&model.ID, &model.Customer, &model.Paid, &model.PaymentDate, &model.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCartNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := c.lineItems(ctx, db, model.ID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model, items), nil
}

// CreateCart вставляет новую неоплаченную корзину с нулевой суммой.
// Если конкурентный запрос успел создать корзину первым, уникальный индекс
// срабатывает и возвращается уже существующая строка.
func (c *CartRepo) CreateCart(ctx context.Context, customer string) (*domain.Cart, error) {
	db := pickQuerier(ctx, c.pool)

	query := `
		INSERT INTO carts (customer, paid, total)
		VALUES ($1, false, 0)
		RETURNING id, customer, paid, payment_date, total
	`

	var model converter.CartModel
	err := db.QueryRow(ctx, query, customer).
		Scan(&model.ID, &model.Customer, &model.Paid, &model.PaymentDate, &model.Total)
	if err != nil {
		if postgresDuplicate(err) {
			return c.GetUnpaidCart(ctx, customer)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model, nil), nil
}

// AddLineItem вставляет новую позицию с количеством 1, копируя категорию и
// цену товара как снапшот. Позиция для той же модели в той же корзине
// нарушит UNIQUE(cart_id, model) — вызывающий обязан проверить заранее.
func (c *CartRepo) AddLineItem(ctx context.Context, cartID int64, item domain.ProductInCart) error {
	db := pickQuerier(ctx, c.pool)

	query := `
		INSERT INTO cart_products (cart_id, model, quantity, category, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := db.Exec(ctx, query, cartID, item.Model, item.Quantity, string(item.Category), item.Price); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// IncrementLineItem увеличивает количество позиции на 1.
// Отсутствие совпадающей строки — no-op, не ошибка.
func (c *CartRepo) IncrementLineItem(ctx context.Context, cartID int64, model string) error {
	return c.bumpLineItem(ctx, cartID, model, +1)
}

// DecrementLineItem уменьшает количество позиции на 1.
// Отсутствие совпадающей строки — no-op, не ошибка.
func (c *CartRepo) DecrementLineItem(ctx context.Context, cartID int64, model string) error {
	return c.bumpLineItem(ctx, cartID, model, -1)
}

func (c *CartRepo) bumpLineItem(ctx context.Context, cartID int64, model string, delta int) error {
	db := pickQuerier(ctx, c.pool)

	query := `
		UPDATE cart_products
		SET quantity = quantity + $3
		WHERE cart_id = $1 AND model = $2
	`

	if _, err := db.Exec(ctx, query, cartID, model, delta); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// RemoveLineItem удаляет позицию целиком.
func (c *CartRepo) RemoveLineItem(ctx context.Context, cartID int64, model string) error {
	db := pickQuerier(ctx, c.pool)

	query := `DELETE FROM cart_products WHERE cart_id = $1 AND model = $2`

	if _, err := db.Exec(ctx, query, cartID, model); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// AdjustTotal прибавляет delta (возможно отрицательную) к сумме корзины.
func (c *CartRepo) AdjustTotal(ctx context.Context, cartID int64, delta int64) error {
	db := pickQuerier(ctx, c.pool)

	query := `UPDATE carts SET total = total + $2 WHERE id = $1`

	if _, err := db.Exec(ctx, query, cartID, delta); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ResetTotal устанавливает сумму корзины ровно в 0.
func (c *CartRepo) ResetTotal(ctx context.Context, cartID int64) error {
	db := pickQuerier(ctx, c.pool)

	query := `UPDATE carts SET total = 0 WHERE id = $1`

	if _, err := db.Exec(ctx, query, cartID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ClearLineItems удаляет все позиции корзины; сумму не трогает —
// вызывающий обязан отдельно вызвать ResetTotal.
func (c *CartRepo) ClearLineItems(ctx context.Context, cartID int64) error {
	db := pickQuerier(ctx, c.pool)

	query := `DELETE FROM cart_products WHERE cart_id = $1`

	if _, err := db.Exec(ctx, query, cartID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// MarkPaid помечает корзину оплаченной с датой оплаты.
func (c *CartRepo) MarkPaid(ctx context.Context, cartID int64, paymentDate string) error {
	db := pickQuerier(ctx, c.pool)

	query := `UPDATE carts SET paid = true, payment_date = $2 WHERE id = $1`

	if _, err := db.Exec(ctx, query, cartID, paymentDate); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetPaidCarts возвращает все оплаченные корзины покупателя с позициями.
func (c *CartRepo) GetPaidCarts(ctx context.Context, customer string) ([]domain.Cart, error) {
	query := `
		SELECT c.id, c.customer, c.paid, c.payment_date, c.total,
		       cp.model, cp.quantity, cp.category, cp.price
		FROM carts c
		LEFT JOIN cart_products cp ON cp.cart_id = c.id
		WHERE c.customer = $1 AND c.paid
		ORDER BY c.id
	`

	return c.queryCarts(ctx, query, customer)
}

// GetAllCarts возвращает все корзины всех покупателей в любых состояниях,
// включая корзины без позиций.
func (c *CartRepo) GetAllCarts(ctx context.Context) ([]domain.Cart, error) {
	query := `
		SELECT c.id, c.customer, c.paid, c.payment_date, c.total,
		       cp.model, cp.quantity, cp.category, cp.price
		FROM carts c
		LEFT JOIN cart_products cp ON cp.cart_id = c.id
		ORDER BY c.id
	`

	return c.queryCarts(ctx, query)
}

// DeleteAll безусловно удаляет все корзины; позиции уходят каскадом по FK.
func (c *CartRepo) DeleteAll(ctx context.Context) error {
	db := pickQuerier(ctx, c.pool)

	if _, err := db.Exec(ctx, `DELETE FROM carts`); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// queryCarts выполняет join-запрос корзин с позициями и группирует строки
// по идентификатору корзины в порядке следования.
func (c *CartRepo) queryCarts(ctx context.Context, query string, args ...any) ([]domain.Cart, error) {
	db := pickQuerier(ctx, c.pool)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	carts := make([]domain.Cart, 0)
	itemsByCart := make(map[int64][]converter.CartProductModel)
	order := make([]int64, 0)
	headers := make(map[int64]converter.CartModel)

	for rows.Next() {
		var (
			cart     converter.CartModel
			model    *string
			quantity *int
			category *string
			price    *int64
		)

		if err := rows.Scan(
			&cart.ID, &cart.Customer, &cart.Paid, &cart.PaymentDate, &cart.Total,
			&model, &quantity, &category, &price,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if _, ok := headers[cart.ID]; !ok {
			headers[cart.ID] = cart
			order = append(order, cart.ID)
			itemsByCart[cart.ID] = []converter.CartProductModel{}
		}

		// LEFT JOIN: у корзины без позиций правая часть NULL
		if model != nil {
			itemsByCart[cart.ID] = append(itemsByCart[cart.ID], converter.CartProductModel{
				CartID:   cart.ID,
				Model:    *model,
				Quantity: *quantity,
				Category: *category,
				Price:    *price,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	for _, id := range order {
		header := headers[id]
		carts = append(carts, *c.conv.ToEntity(&header, itemsByCart[id]))
	}

	return carts, nil
}

// lineItems возвращает позиции одной корзины.
func (c *CartRepo) lineItems(ctx context.Context, db querier, cartID int64) ([]converter.CartProductModel, error) {
	query := `
		SELECT cart_id, model, quantity, category, price
		FROM cart_products
		WHERE cart_id = $1
	`

	rows, err := db.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]converter.CartProductModel, 0)
	for rows.Next() {
		var item converter.CartProductModel
		if err := rows.Scan(&item.CartID, &item.Model, &item.Quantity, &item.Category, &item.Price); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

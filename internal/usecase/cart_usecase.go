package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/ezstore-dev/go-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CartUseCase реализует жизненный цикл корзины покупателя:
// добавление и удаление позиций, оплату и историю заказов.
// Все мутации выполняются в одной транзакции; строка неоплаченной корзины
// блокируется первой, поэтому конкурентные запросы одного покупателя
// сериализуются и check-then-act последовательности безопасны.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// AddToCart добавляет одну единицу товара в текущую корзину покупателя.
// Категория и цена товара копируются в позицию в момент добавления;
// доступность склада проверяется повторно при оплате.
func (c *CartUseCase) AddToCart(ctx context.Context, user *domain.User, model string) error {
	const op = "CartUseCase.AddToCart"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.WithTx(ctx, tx.Transaction())

	product, err := c.productRepo.FindByModel(ctx, model)
	if err != nil {
		return e.Wrap(op, err)
	}

	if product.Quantity == 0 {
		err = e.ErrEmptyStock
		return e.Wrap(op, err)
	}

	cart, err := c.fetchOrCreateCart(ctx, user.Username)
	if err != nil {
		return e.Wrap(op, err)
	}

	if _, ok := findLineItem(cart, model); ok {
		err = c.cartRepo.IncrementLineItem(ctx, cart.ID, model)
	} else {
		err = c.cartRepo.AddLineItem(ctx, cart.ID, domain.NewProductInCart(model, 1, product.Category, product.SellingPrice))
	}
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = c.cartRepo.AdjustTotal(ctx, cart.ID, product.SellingPrice); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetCart возвращает текущую корзину покупателя.
// Если неоплаченной корзины нет, возвращается синтетическая пустая корзина;
// строка в хранилище при этом не создаётся.
func (c *CartUseCase) GetCart(ctx context.Context, user *domain.User) (*domain.Cart, error) {
	const op = "CartUseCase.GetCart"

	cart, err := c.cartRepo.GetUnpaidCart(ctx, user.Username)
	if err != nil {
		if errors.Is(err, e.ErrCartNotFound) {
			return domain.NewEmptyCart(user.Username), nil
		}
		return nil, e.Wrap(op, err)
	}

	return cart, nil
}

// CheckoutCart оплачивает текущую корзину покупателя.
// Для каждой позиции остаток читается заново из каталога с блокировкой строки:
// снапшоту в корзине для решений о доступности доверять нельзя, между
// добавлением и оплатой склад могли распродать. Валидация и списание идут
// по позициям в порядке корзины, всё — в одной транзакции: поздняя ошибка
// откатывает и списания, и оплату целиком.
func (c *CartUseCase) CheckoutCart(ctx context.Context, user *domain.User) error {
	const op = "CartUseCase.CheckoutCart"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.WithTx(ctx, tx.Transaction())

	cart, err := c.cartRepo.GetUnpaidCart(ctx, user.Username)
	if err != nil {
		return e.Wrap(op, err)
	}

	if len(cart.Products) == 0 {
		err = e.ErrEmptyCart
		return e.Wrap(op, err)
	}

	for _, item := range cart.Products {
		var product *domain.Product
		product, err = c.productRepo.FindByModelForUpdate(ctx, item.Model)
		if err != nil {
			return e.Wrap(op, err)
		}

		if product.Quantity == 0 {
			err = e.ErrEmptyStock
			return e.Wrap(op, err)
		}
		if product.Quantity < item.Quantity {
			err = e.ErrInsufficientStock
			return e.Wrap(op, err)
		}

		if err = c.productRepo.DecrementQuantity(ctx, item.Model, item.Quantity); err != nil {
			return e.Wrap(op, err)
		}
	}

	paymentDate := time.Now().Format(time.DateOnly)
	if err = c.cartRepo.MarkPaid(ctx, cart.ID, paymentDate); err != nil {
		return e.Wrap(op, err)
	}

	if err = c.createOrderPlacedEvent(ctx, cart, paymentDate); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	// Списанные товары убираются из кэша уже после коммита
	models := make([]string, 0, len(cart.Products))
	for _, item := range cart.Products {
		models = append(models, item.Model)
	}
	if err := c.cacheRepo.DeleteProducts(ctx, models); err != nil {
		c.logger.Warnf("Failed to invalidate product cache after checkout: %v", e.Wrap(op, err))
	}

	return nil
}

// GetCustomerCarts возвращает историю заказов покупателя — только оплаченные
// корзины; текущая неоплаченная в историю не входит.
func (c *CartUseCase) GetCustomerCarts(ctx context.Context, user *domain.User) ([]domain.Cart, error) {
	const op = "CartUseCase.GetCustomerCarts"

	carts, err := c.cartRepo.GetPaidCarts(ctx, user.Username)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return carts, nil
}

// RemoveProductFromCart убирает одну единицу товара из текущей корзины.
// Позиция с количеством 1 удаляется целиком; сумма корзины уменьшается на
// цену из снапшота позиции, а не на текущую цену каталога.
func (c *CartUseCase) RemoveProductFromCart(ctx context.Context, user *domain.User, model string) error {
	const op = "CartUseCase.RemoveProductFromCart"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.WithTx(ctx, tx.Transaction())

	if _, err = c.productRepo.FindByModel(ctx, model); err != nil {
		return e.Wrap(op, err)
	}

	cart, err := c.cartRepo.GetUnpaidCart(ctx, user.Username)
	if err != nil {
		return e.Wrap(op, err)
	}

	item, ok := findLineItem(cart, model)
	if !ok {
		err = e.ErrProductNotInCart
		return e.Wrap(op, err)
	}

	if item.Quantity > 1 {
		err = c.cartRepo.DecrementLineItem(ctx, cart.ID, model)
	} else {
		err = c.cartRepo.RemoveLineItem(ctx, cart.ID, model)
	}
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = c.cartRepo.AdjustTotal(ctx, cart.ID, -item.Price); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ClearCart удаляет все позиции текущей корзины и обнуляет сумму.
// Сама строка корзины остаётся и переиспользуется следующим добавлением.
func (c *CartUseCase) ClearCart(ctx context.Context, user *domain.User) error {
	const op = "CartUseCase.ClearCart"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.WithTx(ctx, tx.Transaction())

	cart, err := c.cartRepo.GetUnpaidCart(ctx, user.Username)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = c.cartRepo.ClearLineItems(ctx, cart.ID); err != nil {
		return e.Wrap(op, err)
	}

	if err = c.cartRepo.ResetTotal(ctx, cart.ID); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetAllCarts возвращает корзины всех покупателей в любых состояниях,
// включая корзины без позиций. Доступно только admin/manager (роль
// проверяется в слое delivery).
func (c *CartUseCase) GetAllCarts(ctx context.Context) ([]domain.Cart, error) {
	const op = "CartUseCase.GetAllCarts"

	carts, err := c.cartRepo.GetAllCarts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return carts, nil
}

// DeleteAllCarts безусловно удаляет все корзины и их позиции.
func (c *CartUseCase) DeleteAllCarts(ctx context.Context) error {
	const op = "CartUseCase.DeleteAllCarts"

	if err := c.cartRepo.DeleteAll(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// fetchOrCreateCart возвращает неоплаченную корзину покупателя, создавая её
// при отсутствии. Пустая существующая корзина переиспользуется, не пересоздаётся.
func (c *CartUseCase) fetchOrCreateCart(ctx context.Context, customer string) (*domain.Cart, error) {
	cart, err := c.cartRepo.GetUnpaidCart(ctx, customer)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, e.ErrCartNotFound) {
		return nil, err
	}

	return c.cartRepo.CreateCart(ctx, customer)
}

// createOrderPlacedEvent кладёт событие об оплате в outbox той же транзакцией.
func (c *CartUseCase) createOrderPlacedEvent(ctx context.Context, cart *domain.Cart, paymentDate string) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(NewOrderPlacedPayload(eventID, cart, paymentDate))
	if err != nil {
		return err
	}

	_, err = c.outboxRepo.Create(ctx, NewOutboxEvent(eventID, OrderPlaced, cart.Customer, payload))
	return err
}

// findLineItem ищет позицию корзины по модели.
func findLineItem(cart *domain.Cart, model string) (domain.ProductInCart, bool) {
	for _, item := range cart.Products {
		if item.Model == model {
			return item, true
		}
	}

	return domain.ProductInCart{}, false
}

package usecase

import (
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
)

// PRODUCT USECASE

// RegisterProductReq — запрос на регистрацию товара в каталоге.
type RegisterProductReq struct {
	Model       string
	Category    domain.Category
	Price       int64 // в центах
	Quantity    int
	Details     *string
	ArrivalDate *time.Time
}

// GetProductsReq — фильтр каталога; nil-поля означают «без фильтра».
type GetProductsReq struct {
	Category *domain.Category
	Model    *string
}

// USER USECASE

type RegisterUserReq struct {
	Username string
	Name     string
	Surname  string
	Password string
	Role     domain.Role
}

// REVIEW USECASE

type AddReviewReq struct {
	Model   string
	Score   int
	Comment string
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderPlaced OutboxEventType = "order.placed"
)

// OutboxEvent — запись транзакционного outbox: создаётся в той же
// транзакции, что и оплата корзины, публикуется воркером в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	Customer    string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderPlacedPayload — JSON-тело события об оплаченной корзине.
type OrderPlacedPayload struct {
	EventID     string              `json:"event_id"`
	Customer    string              `json:"customer"`
	CartID      int64               `json:"cart_id"`
	Total       int64               `json:"total"`
	PaymentDate string              `json:"payment_date"`
	Products    []OrderPlacedItem   `json:"products"`
}

type OrderPlacedItem struct {
	Model    string `json:"model"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Customer string
	Payload  []byte
}

// MAPPERS

func NewOutboxEvent(eventID string, eventType OutboxEventType, customer string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		Customer:  customer,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}

func NewOrderPlacedPayload(eventID string, cart *domain.Cart, paymentDate string) *OrderPlacedPayload {
	items := make([]OrderPlacedItem, 0, len(cart.Products))
	for _, p := range cart.Products {
		items = append(items, OrderPlacedItem{
			Model:    p.Model,
			Quantity: p.Quantity,
			Category: string(p.Category),
			Price:    p.Price,
		})
	}

	return &OrderPlacedPayload{
		EventID:     eventID,
		Customer:    cart.Customer,
		CartID:      cart.ID,
		Total:       cart.Total,
		PaymentDate: paymentDate,
		Products:    items,
	}
}

func NewWriteRawMessageReq(customer string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Customer: customer,
		Payload:  payload,
	}
}

func NewRegisterProductReq(model string, category domain.Category, price int64, quantity int, details *string, arrivalDate *time.Time) *RegisterProductReq {
	return &RegisterProductReq{
		Model:       model,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
		Details:     details,
		ArrivalDate: arrivalDate,
	}
}

func NewRegisterUserReq(username, name, surname, password string, role domain.Role) *RegisterUserReq {
	return &RegisterUserReq{
		Username: username,
		Name:     name,
		Surname:  surname,
		Password: password,
		Role:     role,
	}
}

func NewAddReviewReq(model string, score int, comment string) *AddReviewReq {
	return &AddReviewReq{
		Model:   model,
		Score:   score,
		Comment: comment,
	}
}

package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	Model       string     `db:"model"`
	Category    string     `db:"category"`
	Price       int64      `db:"price"`
	ArrivalDate *time.Time `db:"arrival_date"`
	Details     *string    `db:"details"`
	Quantity    int        `db:"quantity"`
}

// CartModel представляет запись таблицы carts в PostgreSQL.
type CartModel struct {
	ID          int64      `db:"id"`
	Customer    string     `db:"customer"`
	Paid        bool       `db:"paid"`
	PaymentDate *time.Time `db:"payment_date"`
	Total       int64      `db:"total"`
}

// CartProductModel представляет запись таблицы cart_products в PostgreSQL.
type CartProductModel struct {
	CartID   int64  `db:"cart_id"`
	Model    string `db:"model"`
	Quantity int    `db:"quantity"`
	Category string `db:"category"`
	Price    int64  `db:"price"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	Username     string `db:"username"`
	Name         string `db:"name"`
	Surname      string `db:"surname"`
	Role         string `db:"role"`
	PasswordHash string `db:"password_hash"`
	Salt         string `db:"salt"`
}

// ReviewModel представляет запись таблицы reviews в PostgreSQL.
type ReviewModel struct {
	Model    string    `db:"model"`
	Username string    `db:"username"`
	Score    int       `db:"score"`
	Date     time.Time `db:"review_date"`
	Comment  string    `db:"comment"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	Customer    string     `db:"customer"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}

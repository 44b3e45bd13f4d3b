package domain

// Review — отзыв пользователя о товаре, не более одного на пару (model, user).
type Review struct {
	Model    string
	Username string
	Score    int    // 1..5
	Date     string // YYYY-MM-DD
	Comment  string
}

func NewReview(model, username string, score int, date, comment string) *Review {
	return &Review{
		Model:    model,
		Username: username,
		Score:    score,
		Date:     date,
		Comment:  comment,
	}
}

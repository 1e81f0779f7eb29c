package domain

// CartLine is one book's entry in the cart. Title, cover and price are
// snapshotted at add time; a later edit to the book does not change them.
type CartLine struct {
	BookID     string `json:"bookId"`
	Title      string `json:"title"`
	Price      int64  `json:"price"` // effective price at add time
	CoverImage string `json:"coverImage"`
	Quantity   int    `json:"quantity"`
}

// NewCartLine snapshots a book into a quantity-1 cart line.
func NewCartLine(b Book) CartLine {
	return CartLine{
		BookID:     b.ID,
		Title:      b.Title,
		Price:      b.EffectivePrice(),
		CoverImage: b.CoverImage,
		Quantity:   1,
	}
}

// CartTotals sums quantities and price*quantity over a line collection.
func CartTotals(lines []CartLine) (count int, total int64) {
	for _, l := range lines {
		count += l.Quantity
		total += l.Price * int64(l.Quantity)
	}
	return count, total
}

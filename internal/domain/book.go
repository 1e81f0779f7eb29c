package domain

import (
	"context"
	"io"
	"math"
	"time"
)

type Book struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	AuthorName  string    `json:"authorName"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Price       int64     `json:"price"`
	Discount    int       `json:"discount"` // percentage, 0 = none
	CoverImage  string    `json:"coverImage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EffectivePrice returns the price after applying the percentage discount,
// rounded to the nearest integer currency unit. No discount returns the
// base price unchanged.
func (b Book) EffectivePrice() int64 {
	if b.Discount <= 0 {
		return b.Price
	}
	p := float64(b.Price)
	return int64(math.Round(p - p*float64(b.Discount)/100))
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Slider struct {
	ID       string `json:"_id"`
	ImageURL string `json:"imageUrl"`
}

// FileUpload carries an optional uploaded file (cover image, slider image)
// that is relayed to the backend as-is inside a multipart form.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// BookForm is the payload for privileged create/update calls. Cover is
// optional; when nil the backend keeps the existing image.
type BookForm struct {
	Title       string `validate:"required"`
	AuthorName  string `validate:"required"`
	Description string
	CategoryID  string `validate:"required"`
	Price       int64  `validate:"gte=0"`
	Discount    int    `validate:"gte=0,lte=100"`
	Cover       *FileUpload
}

type SliderForm struct {
	Image *FileUpload
}

// CatalogAPI is the remote backend surface for books and categories.
type CatalogAPI interface {
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id string) (*Book, error)
	CreateBook(ctx context.Context, token string, form BookForm) (*Book, error)
	UpdateBook(ctx context.Context, token, id string, form BookForm) (*Book, error)
	DeleteBook(ctx context.Context, token, id string) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, token, name string) (*Category, error)
}

// SliderAPI is the remote backend surface for homepage sliders.
type SliderAPI interface {
	ListSliders(ctx context.Context) ([]Slider, error)
	CreateSlider(ctx context.Context, token string, form SliderForm) (*Slider, error)
	UpdateSlider(ctx context.Context, token, id string, form SliderForm) (*Slider, error)
	DeleteSlider(ctx context.Context, token, id string) error
}

package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"boighor-storefront/internal/domain"
)

func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.getJSON(ctx, "/api/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	if err := c.getJSON(ctx, "/api/books/"+id, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) CreateBook(ctx context.Context, token string, form domain.BookForm) (*domain.Book, error) {
	body, contentType, err := encodeBookForm(form)
	if err != nil {
		return nil, err
	}

	var book domain.Book
	if err := c.do(ctx, http.MethodPost, "/api/books", token, body, contentType, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) UpdateBook(ctx context.Context, token, id string, form domain.BookForm) (*domain.Book, error) {
	body, contentType, err := encodeBookForm(form)
	if err != nil {
		return nil, err
	}

	var book domain.Book
	if err := c.do(ctx, http.MethodPut, "/api/books/"+id, token, body, contentType, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) DeleteBook(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+id, token, nil, "", nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name string) (*domain.Category, error) {
	var category domain.Category
	if err := c.postJSON(ctx, "/api/categories", token, map[string]string{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// encodeBookForm builds the multipart body the backend expects for book
// mutations. The cover file is relayed verbatim; this service never touches
// image bytes.
func encodeBookForm(form domain.BookForm) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       form.Title,
		"authorName":  form.AuthorName,
		"description": form.Description,
		"categoryId":  form.CategoryID,
		"price":       strconv.FormatInt(form.Price, 10),
		"discount":    strconv.Itoa(form.Discount),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if form.Cover != nil {
		fw, err := mw.CreateFormFile("coverImage", form.Cover.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create cover part: %w", err)
		}
		if _, err := io.Copy(fw, form.Cover.Reader); err != nil {
			return nil, "", fmt.Errorf("copy cover: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

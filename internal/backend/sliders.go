package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"boighor-storefront/internal/domain"
)

func (c *Client) ListSliders(ctx context.Context) ([]domain.Slider, error) {
	var sliders []domain.Slider
	if err := c.getJSON(ctx, "/api/sliders", &sliders); err != nil {
		return nil, err
	}
	return sliders, nil
}

func (c *Client) CreateSlider(ctx context.Context, token string, form domain.SliderForm) (*domain.Slider, error) {
	body, contentType, err := encodeSliderForm(form)
	if err != nil {
		return nil, err
	}

	var slider domain.Slider
	if err := c.do(ctx, http.MethodPost, "/api/sliders", token, body, contentType, &slider); err != nil {
		return nil, err
	}
	return &slider, nil
}

func (c *Client) UpdateSlider(ctx context.Context, token, id string, form domain.SliderForm) (*domain.Slider, error) {
	body, contentType, err := encodeSliderForm(form)
	if err != nil {
		return nil, err
	}

	var slider domain.Slider
	if err := c.do(ctx, http.MethodPut, "/api/sliders/"+id, token, body, contentType, &slider); err != nil {
		return nil, err
	}
	return &slider, nil
}

func (c *Client) DeleteSlider(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/sliders/"+id, token, nil, "", nil)
}

func encodeSliderForm(form domain.SliderForm) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if form.Image != nil {
		fw, err := mw.CreateFormFile("image", form.Image.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(fw, form.Image.Reader); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

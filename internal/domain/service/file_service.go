package service

import (
	"context"
	"io"
)

// ImageStorage stores uploaded images and returns their public URL.
type ImageStorage interface {
	UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
	DeleteImage(ctx context.Context, url string) error
	Close() error
}

package cdn

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const maxImageBytes = 10 << 20

var (
	// ErrInvalidImage marks failures caused by the submitted image itself.
	ErrInvalidImage      = errors.New("invalid image")
	ErrUnsupportedSource = errors.New("image must be a data URI or an http(s) URL")
)

// Image is a decoded upload ready to be pushed to the bucket.
type Image struct {
	Data        []byte
	ContentType string
}

// Ext returns a file extension for the image content type.
func (img *Image) Ext() string {
	switch img.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if exts, _ := mime.ExtensionsByType(img.ContentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// SourceLoader turns the image strings admins submit into bytes.
type SourceLoader struct {
	client *resty.Client
}

func NewSourceLoader() *SourceLoader {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetResponseBodyLimit(maxImageBytes)
	return &SourceLoader{client: client}
}

func (l *SourceLoader) Load(ctx context.Context, source string) (*Image, error) {
	switch {
	case strings.HasPrefix(source, "data:"):
		return parseDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.fetch(ctx, source)
	default:
		return nil, ErrUnsupportedSource
	}
}

func (l *SourceLoader) fetch(ctx context.Context, source string) (*Image, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Accept", "image/*").
		Get(source)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch image: %s returned status %d", source, resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch image: %s returned an empty body", source)
	}
	if len(body) > maxImageBytes {
		return nil, fmt.Errorf("fetch image: %s exceeds %d bytes", source, maxImageBytes)
	}

	contentType := resp.Header().Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}
	return &Image{Data: body, ContentType: contentType}, nil
}

func parseDataURI(source string) (*Image, error) {
	meta, payload, found := strings.Cut(strings.TrimPrefix(source, "data:"), ",")
	if !found {
		return nil, errors.New("malformed data URI")
	}
	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return nil, errors.New("data URI must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("data URI is empty")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Image{Data: data, ContentType: contentType}, nil
}

package storage

import (
	"context"
	"io"
	"time"
)

// Uploader stores an object and returns its key. Resume PDFs are private;
// clients get time-limited read access via Signer.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

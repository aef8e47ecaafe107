package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry bounds how long issued upload/download URLs stay valid.
const DefaultPresignedURLExpiry = 15 * time.Minute

// PhotoStorage defines the object storage operations needed for progress
// photos. Files never pass through the API server: clients PUT and GET
// directly against presigned URLs.
type PhotoStorage interface {
	// PresignUpload creates a temporary URL allowing a direct PUT of the
	// object. The client must send the same Content-Type on upload.
	PresignUpload(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)

	// PresignDownload creates a temporary URL allowing a direct GET of the object.
	PresignDownload(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the bucket.
	DeleteObject(ctx context.Context, objectKey string) error
}

package repositories

import "context"

// UploadArchive keeps a copy of raw uploaded files in object storage
type UploadArchive interface {
	// Archive stores data and returns the object key it was written under
	Archive(ctx context.Context, category, filename string, data []byte) (string, error)
}

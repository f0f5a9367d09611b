package contracts

import "context"

type ObjectStorage interface {
	// Upload stores the object and returns a durable URL for it.
	Upload(ctx context.Context, folder, objectName, contentType string, data []byte) (string, error)
}

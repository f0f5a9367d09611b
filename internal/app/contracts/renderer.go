package contracts

import "context"

type DocumentRenderer interface {
	// RenderPDF converts an HTML document into PDF bytes.
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

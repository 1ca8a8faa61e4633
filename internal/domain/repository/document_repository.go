package repository

import (
	"context"
	"io"

	"workshop-service/internal/domain/entity"
)

// DocumentSource defines the interface for reading job card documents
type DocumentSource interface {
	// ListFolder returns the non-trashed children of a folder, following pagination
	ListFolder(ctx context.Context, parentID string, filter entity.FolderFilter) ([]entity.DocumentEntry, error)

	// ReadGrid reads a named range as rows of cells. It returns an error wrapping
	// ErrUnsupportedFormat when the document is not a native spreadsheet.
	ReadGrid(ctx context.Context, documentID, rangeName string) (entity.Grid, error)

	// ReadRawBytes downloads the document content. The caller closes the reader.
	ReadRawBytes(ctx context.Context, documentID string) (io.ReadCloser, error)
}

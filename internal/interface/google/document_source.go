package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"
	"workshop-service/pkg/logger"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DocumentSource reads the job card hierarchy from Drive and card grids from Sheets
type DocumentSource struct {
	drive  *drive.Service
	sheets *sheets.Service
	logger logger.Logger
}

// NewDocumentSource creates a new Drive/Sheets document source
func NewDocumentSource(driveService *drive.Service, sheetsService *sheets.Service, logger logger.Logger) repository.DocumentSource {
	return &DocumentSource{
		drive:  driveService,
		sheets: sheetsService,
		logger: logger,
	}
}

// ListQuery builds the Drive search expression for the children of parentID
func ListQuery(parentID string, filter entity.FolderFilter) string {
	q := []string{
		fmt.Sprintf("'%s' in parents", escapeQuery(parentID)),
		"trashed = false",
	}
	if filter.FoldersOnly {
		q = append(q, fmt.Sprintf("mimeType = '%s'", folderMimeType))
	}
	if filter.NameContains != "" {
		q = append(q, fmt.Sprintf("name contains '%s'", escapeQuery(filter.NameContains)))
	}
	return strings.Join(q, " and ")
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// ListFolder returns every matching child of parentID across all result pages
func (s *DocumentSource) ListFolder(ctx context.Context, parentID string, filter entity.FolderFilter) ([]entity.DocumentEntry, error) {
	var out []entity.DocumentEntry

	call := s.drive.Files.List().
		Q(ListQuery(parentID, filter)).
		Fields("nextPageToken, files(id, name, modifiedTime)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		PageSize(1000)

	err := call.Pages(ctx, func(page *drive.FileList) error {
		for _, f := range page.Files {
			entry := entity.DocumentEntry{ID: f.Id, Name: f.Name}
			if f.ModifiedTime != "" {
				modified, err := time.Parse(time.RFC3339, f.ModifiedTime)
				if err != nil {
					return fmt.Errorf("file %s has invalid modifiedTime %q: %w", f.Id, f.ModifiedTime, err)
				}
				entry.ModifiedTime = modified.UTC()
			}
			out = append(out, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", parentID, err)
	}

	s.logger.Debug("Folder listed", "folderId", parentID, "count", len(out))
	return out, nil
}

// ReadGrid reads rangeName of a native spreadsheet as strings
func (s *DocumentSource) ReadGrid(ctx context.Context, documentID, rangeName string) (entity.Grid, error) {
	resp, err := s.sheets.Spreadsheets.Values.Get(documentID, rangeName).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s: %v", repository.ErrUnsupportedFormat, documentID, err)
		}
		return nil, fmt.Errorf("failed to read %s!%s: %w", documentID, rangeName, err)
	}
	return toGrid(resp.Values), nil
}

// ReadRawBytes downloads the stored file content
func (s *DocumentSource) ReadRawBytes(ctx context.Context, documentID string) (io.ReadCloser, error) {
	resp, err := s.drive.Files.Get(documentID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", documentID, err)
	}
	return resp.Body, nil
}

func toGrid(values [][]interface{}) entity.Grid {
	grid := make(entity.Grid, len(values))
	for r, row := range values {
		grid[r] = make([]string, len(row))
		for c, v := range row {
			switch t := v.(type) {
			case nil:
			case string:
				grid[r][c] = t
			default:
				grid[r][c] = fmt.Sprint(t)
			}
		}
	}
	return grid
}

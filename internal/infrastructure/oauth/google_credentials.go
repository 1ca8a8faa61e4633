package oauth

import (
	"context"
	"fmt"
	"os"

	"workshop-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleCredentials builds authenticated Drive and Sheets clients from one credential file
type GoogleCredentials struct {
	tokenSource oauth2.TokenSource
	logger      logger.Logger
}

// Scopes requested for the job card folders and the master spreadsheet
var Scopes = []string{drive.DriveScope, sheets.SpreadsheetsScope}

// NewGoogleCredentials loads a service-account or authorized-user JSON file
func NewGoogleCredentials(ctx context.Context, path string, logger logger.Logger) (*GoogleCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read google credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}

	logger.Info("Google credentials loaded", "path", path, "projectId", creds.ProjectID)
	return &GoogleCredentials{
		tokenSource: creds.TokenSource,
		logger:      logger,
	}, nil
}

// TokenSource returns the shared token source
func (c *GoogleCredentials) TokenSource() oauth2.TokenSource {
	return c.tokenSource
}

// DriveService creates a Drive v3 client
func (c *GoogleCredentials) DriveService(ctx context.Context) (*drive.Service, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(c.tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

// SheetsService creates a Sheets v4 client
func (c *GoogleCredentials) SheetsService(ctx context.Context) (*sheets.Service, error) {
	svc, err := sheets.NewService(ctx, option.WithTokenSource(c.tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return svc, nil
}

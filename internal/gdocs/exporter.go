// Package gdocs refreshes the local rendering templates from the user's
// master documents in Google Docs.
package gdocs

import (
	"context"
	"fmt"
	"io"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Exporter fetches a document's content and display name from a remote
// document store.
type Exporter interface {
	Export(ctx context.Context, docID, mimeType string) ([]byte, error)
	Name(ctx context.Context, docID string) (string, error)
}

// DriveExporter exports Google Docs through the Drive API.
type DriveExporter struct {
	svc *drive.Service
}

// NewDriveExporter builds a read-only Drive client from a service-account
// credentials file.
func NewDriveExporter(ctx context.Context, credentialsPath string) (*DriveExporter, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}
	return &DriveExporter{svc: svc}, nil
}

// Export downloads the document converted to the given MIME type.
func (d *DriveExporter) Export(ctx context.Context, docID, mimeType string) ([]byte, error) {
	resp, err := d.svc.Files.Export(docID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export document %s: %w", docID, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Name returns the document's display name.
func (d *DriveExporter) Name(ctx context.Context, docID string) (string, error) {
	f, err := d.svc.Files.Get(docID).Fields("name").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch name of document %s: %w", docID, err)
	}
	return f.Name, nil
}

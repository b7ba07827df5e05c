package backup

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveFile is the part of a drive file the backup cares about.
type DriveFile struct {
	ID          string
	Name        string
	CreatedTime string
}

// GoogleDrive wraps the drive v3 service with the few calls the backup needs.
type GoogleDrive struct {
	service   *drive.Service
	shareWith string
}

// NewGoogleDrive creates the drive client from service account credentials. Created
// folders and files are shared (reader) with shareWith, when set.
func NewGoogleDrive(ctx context.Context, credentialsJson []byte, shareWith string) (*GoogleDrive, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}
	return &GoogleDrive{
		service:   driveService,
		shareWith: shareWith,
	}, nil
}

func (d *GoogleDrive) FindFolders(ctx context.Context, name string) ([]DriveFile, error) {
	query := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, name)
	res, err := d.service.Files.List().
		Q(query).
		Fields("files(id, name, createdTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return toDriveFiles(res.Files), nil
}

func (d *GoogleDrive) CreateFolder(ctx context.Context, name string) (string, error) {
	folder, err := d.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if err := d.share(ctx, folder.Id); err != nil {
		return folder.Id, err
	}
	return folder.Id, nil
}

func (d *GoogleDrive) ListFiles(ctx context.Context, folderID string) ([]DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", folderID, folderMimeType)
	var files []DriveFile
	call := d.service.Files.List().
		Q(query).
		Fields("nextPageToken, files(id, name, createdTime)").
		Context(ctx)
	err := call.Pages(ctx, func(page *drive.FileList) error {
		files = append(files, toDriveFiles(page.Files)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list backup files: %w", err)
	}
	return files, nil
}

func (d *GoogleDrive) CreateFile(ctx context.Context, folderID, name string, content []byte) (string, error) {
	file, err := d.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: "application/json",
		Parents:  []string{folderID},
	}).
		Fields("id, parents").
		Media(bytes.NewReader(content)).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if err := d.share(ctx, file.Id); err != nil {
		return file.Id, err
	}
	return file.Id, nil
}

func (d *GoogleDrive) Delete(ctx context.Context, id string) error {
	return d.service.Files.Delete(id).Context(ctx).Do()
}

func (d *GoogleDrive) share(ctx context.Context, fileID string) error {
	if d.shareWith == "" {
		return nil
	}
	_, err := d.service.Permissions.Create(fileID, &drive.Permission{
		EmailAddress: d.shareWith,
		Type:         "user",
		Role:         "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("share %s: %w", fileID, err)
	}
	return nil
}

func toDriveFiles(files []*drive.File) []DriveFile {
	out := make([]DriveFile, 0, len(files))
	for _, f := range files {
		out = append(out, DriveFile{ID: f.Id, Name: f.Name, CreatedTime: f.CreatedTime})
	}
	return out
}

package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workouts"

	log "github.com/sirupsen/logrus"
)

const (
	RootFolderName   = "liftlog-backups"
	DefaultChunkSize = 350 // number of workout days in one backup file
)

type driveAPI interface {
	FindFolders(ctx context.Context, name string) ([]DriveFile, error)
	CreateFolder(ctx context.Context, name string) (string, error)
	ListFiles(ctx context.Context, folderID string) ([]DriveFile, error)
	CreateFile(ctx context.Context, folderID, name string, content []byte) (string, error)
	Delete(ctx context.Context, id string) error
}

type daysSource interface {
	ListAllSince(ctx context.Context, since *time.Time) ([]workouts.DaySessionRecord, error)
}

// Service backs up workout days to google drive as chunked JSON files.
// Every run after the first one only stores days updated since the newest backup file.
type Service struct {
	drive     driveAPI
	days      daysSource
	folderID  string
	chunkSize int
}

func NewService(ctx context.Context, drive driveAPI, days daysSource) (*Service, error) {
	s := &Service{
		drive:     drive,
		days:      days,
		chunkSize: DefaultChunkSize,
	}

	folders, err := drive.FindFolders(ctx, RootFolderName)
	if err != nil {
		return nil, err
	}

	switch {
	case len(folders) == 0:
		log.Println("root backups folder not found, creating ...")
		if s.folderID, err = drive.CreateFolder(ctx, RootFolderName); err != nil {
			return nil, fmt.Errorf("create root backups folder: %w", err)
		}
		log.Printf("new root backups folder created: %s", s.folderID)
	case len(folders) > 1:
		log.Warnf("found %d root backups folders, will take the first one: %s", len(folders), folders[0].ID)
		s.folderID = folders[0].ID
	default:
		log.Printf("root backups folder found, %s: %s", folders[0].Name, folders[0].ID)
		s.folderID = folders[0].ID
	}

	return s, nil
}

// WithChunkSize changes the max number of days stored in a single file.
func (s *Service) WithChunkSize(chunkSize int) *Service {
	if chunkSize > 0 {
		s.chunkSize = chunkSize
	}
	return s
}

// Reinit drops all existing backups and backs up everything again.
func (s *Service) Reinit(ctx context.Context, baseTime time.Time) (int, error) {
	log.Println("workout days backup reinit starting ...")

	if err := s.drive.Delete(ctx, s.folderID); err != nil {
		return 0, fmt.Errorf("delete root backups folder: %w", err)
	}

	folderID, err := s.drive.CreateFolder(ctx, RootFolderName)
	if err != nil {
		return 0, fmt.Errorf("create root backups folder: %w", err)
	}
	log.Printf("new root backups folder created: %s", folderID)
	s.folderID = folderID

	return s.DoBackup(ctx, baseTime)
}

// DoBackup stores the days not backed up yet and returns how many it stored.
func (s *Service) DoBackup(ctx context.Context, baseTime time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalBackupTracer.Start(ctx, "backup.workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	files, err := s.drive.ListFiles(ctx, s.folderID)
	if err != nil {
		return 0, err
	}

	if len(files) == 0 {
		log.Println("backups empty, creating initial backup ...")
		days, err := s.days.ListAllSince(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("get workout days: %w", err)
		}
		baseName := fmt.Sprintf("initial-%d-%d-%d", baseTime.Day(), baseTime.Month(), baseTime.Year())
		if err := s.backupDays(ctx, days, baseName); err != nil {
			return 0, err
		}
		log.Printf("initial backup of %d workout days done", len(days))
		return len(days), nil
	}

	lastCreatedAt := time.Time{}
	for _, file := range files {
		createdAt, err := time.Parse(time.RFC3339, file.CreatedTime)
		if err != nil {
			log.Warnf(" ---> error parsing created at for file %s: %s", file.Name, err)
			continue
		}
		if createdAt.After(lastCreatedAt) {
			lastCreatedAt = createdAt
		}
	}

	days, err := s.days.ListAllSince(ctx, &lastCreatedAt)
	if err != nil {
		return 0, fmt.Errorf("get workout days since %s: %w", lastCreatedAt, err)
	}
	if len(days) == 0 {
		log.Println("no new workout days to backup, done")
		return 0, nil
	}

	log.Printf(" ---- backing up %d workout days since %v", len(days), lastCreatedAt)
	baseName := nextBaseName(files, fmt.Sprintf("workout-days-%d-%d-%d", baseTime.Day(), baseTime.Month(), baseTime.Year()))
	if err := s.backupDays(ctx, days, baseName); err != nil {
		return 0, err
	}

	return len(days), nil
}

// nextBaseName appends a counter to baseName until no existing file starts with it.
func nextBaseName(files []DriveFile, baseName string) string {
	taken := make(map[string]bool, len(files))
	for _, f := range files {
		taken[f.Name] = true
	}

	name := baseName
	for counter := 2; taken[chunkFileName(name, 1)]; counter++ {
		name = fmt.Sprintf("%s_%d", baseName, counter)
	}
	return name
}

func chunkFileName(baseName string, chunk int) string {
	return fmt.Sprintf("%s_%d.json", baseName, chunk)
}

func (s *Service) backupDays(ctx context.Context, days []workouts.DaySessionRecord, baseName string) error {
	for chunk, from := 1, 0; from < len(days); chunk, from = chunk+1, from+s.chunkSize {
		to := min(from+s.chunkSize, len(days))
		fileName := chunkFileName(baseName, chunk)

		content, err := json.Marshal(days[from:to])
		if err != nil {
			return fmt.Errorf("%s: marshal workout days: %w", fileName, err)
		}

		fileID, err := s.drive.CreateFile(ctx, s.folderID, fileName, content)
		if err != nil {
			return fmt.Errorf("%s: create backup file: %w", fileName, err)
		}
		log.Printf("%s: backup file with %d workout days [from %d to %d] saved: %s", fileName, to-from, from, to, fileID)
	}
	return nil
}

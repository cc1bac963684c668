package service

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/minthuka/bookpos-api/internal/config"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"go.uber.org/zap"
)

// BackupService produces and manages database dumps via pg_dump. Admin only.
type BackupService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(cfg *config.Config, logger *zap.Logger) *BackupService {
	return &BackupService{
		cfg:    cfg,
		logger: logger,
	}
}

// BackupFile describes one dump on disk
type BackupFile struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBackup runs pg_dump into the configured backup directory and returns
// the resulting file.
func (s *BackupService) CreateBackup(ctx context.Context) (*BackupFile, error) {
	if err := os.MkdirAll(s.cfg.Backup.Path, 0o755); err != nil {
		s.logger.Error("failed to create backup directory", zap.Error(err))
		return nil, apperror.NewStorageError()
	}

	name := "backup_" + time.Now().Format("20060102_150405") + ".sql"
	path := filepath.Join(s.cfg.Backup.Path, name)

	db := s.cfg.Database
	cmd := exec.CommandContext(ctx, s.cfg.Backup.PgDumpPath,
		"-h", db.Host,
		"-p", db.Port,
		"-U", db.User,
		"-d", db.Name,
		"-f", path,
		"--no-owner",
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+db.Password)

	if output, err := cmd.CombinedOutput(); err != nil {
		s.logger.Error("pg_dump failed",
			zap.Error(err),
			zap.String("output", string(output)))
		_ = os.Remove(path)
		return nil, apperror.NewStorageError()
	}

	info, err := os.Stat(path)
	if err != nil {
		s.logger.Error("backup file missing after pg_dump", zap.Error(err))
		return nil, apperror.NewStorageError()
	}

	s.logger.Info("database backup created",
		zap.String("file", name),
		zap.Int64("size", info.Size()))

	return &BackupFile{
		Name:      name,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// ListBackups lists dumps in the backup directory, newest first
func (s *BackupService) ListBackups(ctx context.Context) ([]BackupFile, error) {
	entries, err := os.ReadDir(s.cfg.Backup.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupFile{}, nil
		}
		s.logger.Error("failed to read backup directory", zap.Error(err))
		return nil, apperror.NewStorageError()
	}

	backups := make([]BackupFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupFile{
			Name:      entry.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// DeleteBackup removes a dump by file name. The name must resolve inside the
// backup directory.
func (s *BackupService) DeleteBackup(ctx context.Context, name string) error {
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".sql") {
		return apperror.NewInvalidInputError("Invalid backup file name")
	}

	path := filepath.Join(s.cfg.Backup.Path, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return apperror.NewNotFoundError("Backup")
		}
		s.logger.Error("failed to stat backup file", zap.Error(err))
		return apperror.NewStorageError()
	}

	if err := os.Remove(path); err != nil {
		s.logger.Error("failed to delete backup file", zap.Error(err))
		return apperror.NewStorageError()
	}

	s.logger.Info("database backup deleted", zap.String("file", name))
	return nil
}

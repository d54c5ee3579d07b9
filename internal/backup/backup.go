// Package backup creates and lists point-in-time copies of the catalog
// database.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/audiologapp/audiolog/internal/store"
)

// Service manages backup creation and listing for one catalog database.
type Service struct {
	store     *store.Store
	backupDir string
	logger    *slog.Logger
}

// Info describes one backup file on disk.
type Info struct {
	Name      string
	Path      string
	SizeBytes int64
	CreatedAt time.Time
}

func NewService(s *store.Store, backupDir string, logger *slog.Logger) *Service {
	return &Service{store: s, backupDir: backupDir, logger: logger}
}

// Create writes a new timestamped backup and returns its info. The copy is
// taken with VACUUM INTO, so it is consistent even while the database is
// open.
func (s *Service) Create(ctx context.Context) (*Info, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02-150405")
	path := filepath.Join(s.backupDir, fmt.Sprintf("audiolog-%s.db", timestamp))

	s.logger.Info("creating backup", "output", path)
	if err := s.store.BackupTo(ctx, path); err != nil {
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat backup: %w", err)
	}
	return &Info{
		Name:      fi.Name(),
		Path:      path,
		SizeBytes: fi.Size(),
		CreatedAt: fi.ModTime(),
	}, nil
}

// List returns the backups in the backup directory, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "audiolog-") || !strings.HasSuffix(name, ".db") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Name:      name,
			Path:      filepath.Join(s.backupDir, name),
			SizeBytes: fi.Size(),
			CreatedAt: fi.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

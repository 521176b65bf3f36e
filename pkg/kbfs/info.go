package kbfs

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// FileMetadata describes a single file.
type FileMetadata struct {
	Name         string `json:"name" description:"Base name"`
	Path         string `json:"path" description:"Path relative to the root directory"`
	SizeBytes    int64  `json:"size_bytes" description:"Size in bytes"`
	SizeHuman    string `json:"size_human" description:"Human-readable size"`
	IsDirectory  bool   `json:"is_directory" description:"Always false"`
	MIMEType     string `json:"mime_type,omitempty" description:"Detected MIME type"`
	CreatedTime  string `json:"created_time" description:"Status change time (RFC3339)"`
	ModifiedTime string `json:"modified_time" description:"Last modification time (RFC3339)"`
	AccessedTime string `json:"accessed_time" description:"Last access time (RFC3339)"`
	Permissions  string `json:"permissions" description:"Unix-style permission string, e.g. -rw-r--r--"`
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// GetFileInfo returns metadata for the file rel.
func (s *Service) GetFileInfo(ctx context.Context, rel string) (FileMetadata, error) {
	t, err := s.fileTarget("get_file_info", rel)
	if err != nil {
		return FileMetadata{}, err
	}
	created, accessed := fileTimes(t.info)
	md := FileMetadata{
		Name:         filepath.Base(t.abs),
		Path:         t.rel(),
		SizeBytes:    t.info.Size(),
		SizeHuman:    FormatSize(t.info.Size()),
		IsDirectory:  false,
		CreatedTime:  formatTime(created),
		ModifiedTime: formatTime(t.info.ModTime()),
		AccessedTime: formatTime(accessed),
		Permissions:  FormatPermissions(t.info.Mode()),
	}
	if mt, err := mimetype.DetectFile(t.abs); err == nil {
		md.MIMEType = mt.String()
	} else {
		s.log.Debug("mime detection failed", zap.String("path", md.Path), zap.Error(err))
	}
	return md, nil
}

// FormatSize renders n bytes with two decimals in the largest unit that
// keeps the value below 1024, from B up to PB.
func FormatSize(n int64) string {
	size := float64(n)
	for _, unit := range sizeUnits {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f PB", size)
}

// FormatPermissions renders mode as a 10-character string such as
// "drwxr-x---".
func FormatPermissions(mode fs.FileMode) string {
	const rwx = "rwxrwxrwx"
	b := []byte("----------")
	if mode.IsDir() {
		b[0] = 'd'
	}
	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		}
	}
	return string(b)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

package photo

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/schollz/progressbar/v3"
)

// MediaExtensions are the default supported photo and video extensions
var MediaExtensions = []string{
	".jpg",
	".jpeg",
	".png",
	".heic",
	".heif",
	".gif",
	".tif",
	".tiff",
	".dng", // camera raw
	".cr2",
	".cr3",
	".nef",
	".arw",
	".mp4",
	".mov",
	".avi",
	".m4v",
}

// Scanner discovers photo and video files in a directory tree. It only
// reads directory entries and mtimes; file contents are never opened.
type Scanner struct {
	extensions map[string]bool
}

// ScanConfig holds scanner configuration
type ScanConfig struct {
	AdditionalExts []string
}

// NewScanner creates a new Scanner
func NewScanner(cfg *ScanConfig) *Scanner {
	extMap := make(map[string]bool)
	for _, ext := range MediaExtensions {
		extMap[strings.ToLower(ext)] = true
	}
	if cfg != nil {
		for _, ext := range cfg.AdditionalExts {
			extMap[strings.ToLower(ext)] = true
		}
	}
	return &Scanner{extensions: extMap}
}

// ScanResult represents a scan result
type ScanResult struct {
	Media   []dive.Media
	Skipped int
	Errors  []error
}

// Scan walks the source directory and collects media descriptors sorted
// by timestamp. Unreadable entries are reported and skipped; the walk
// itself continues.
func (s *Scanner) Scan(ctx context.Context, sourcePath string) (*ScanResult, error) {
	util.InfoLog("Starting media scan of: %s", sourcePath)

	result := &ScanResult{
		Media:  make([]dive.Media, 0),
		Errors: make([]error, 0),
	}

	// Disable the progress bar when output is piped or redirected
	isTTY := util.IsTerminal(os.Stdout.Fd())
	var bar *progressbar.ProgressBar
	if isTTY && !util.IsQuiet() {
		barWidth := 40
		if util.GetTerminalWidth() < 80 {
			barWidth = 20
		}
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Scanning"),
			progressbar.OptionSetWidth(barWidth),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files"),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	walkErr := filepath.WalkDir(sourcePath, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			util.WarnLog("Error accessing path %s: %v", path, err)
			result.Errors = append(result.Errors, fmt.Errorf("access error: %s: %w", path, err))
			return nil // Continue walking
		}

		if d.IsDir() {
			return nil
		}

		if !s.isMediaFile(path) {
			result.Skipped++
			return nil
		}

		info, err := d.Info()
		if err != nil {
			util.WarnLog("Error reading metadata for %s: %v", path, err)
			result.Errors = append(result.Errors, fmt.Errorf("stat error: %s: %w", path, err))
			return nil
		}

		result.Media = append(result.Media, dive.Media{
			Name:           d.Name(),
			LastModifiedMs: info.ModTime().UnixMilli(),
			Path:           path,
		})

		if bar != nil {
			bar.Add(1)
		}

		return nil
	})

	if bar != nil {
		bar.Finish()
	}

	if walkErr != nil && walkErr != context.Canceled {
		return result, fmt.Errorf("walk error: %w", walkErr)
	}

	SortByTimestamp(result.Media)

	util.SuccessLog("Scan complete: %d media files found, %d skipped, %d errors",
		len(result.Media), result.Skipped, len(result.Errors))

	return result, nil
}

// isMediaFile checks if a file has a supported media extension
func (s *Scanner) isMediaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return s.extensions[ext]
}

package ranges

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/relaymark/relaymark/internal/config"
	"github.com/relaymark/relaymark/internal/hashing"
	"github.com/relaymark/relaymark/internal/log"
)

// Download fetches the published range table from its configured URL.
// Returns (changed, error) where changed indicates if the file was updated.
// An existing file is left untouched when the download fails or the content
// is unchanged.
func Download(cfg *config.Config) (bool, error) {
	url := cfg.Ranges.URL
	if url == "" {
		return false, fmt.Errorf("no range table URL configured")
	}

	rangesDir := filepath.Clean(cfg.GetAbsRangesDir())
	if err := os.MkdirAll(rangesDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create ranges directory: %v", err)
	}

	log.Infof("Downloading range table from URL: %s", url)

	client := &http.Client{}
	resp, err := client.Get(url)
	if err != nil {
		return false, fmt.Errorf("failed to download range table: %v", err)
	}
	defer resp.Body.Close()
	bodyProxy := hashing.NewMD5ReaderProxy(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("failed to download range table: %s", resp.Status)
	}

	content, err := io.ReadAll(bodyProxy)
	if err != nil {
		return false, fmt.Errorf("failed to read range table response: %v", err)
	}

	filePath := cfg.GetAbsRangesFilePath()

	if changed, err := hashing.IsFileChanged(bodyProxy, filePath); err != nil {
		log.Errorf("Failed to calculate range table checksum: %v", err)
	} else if !changed {
		log.Infof("Range table is not changed, skipping write to disk")
		return false, nil
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write range table to %s: %v", filePath, err)
	}
	if err := hashing.WriteChecksum(bodyProxy, filePath); err != nil {
		return false, fmt.Errorf("failed to write range table checksum: %v", err)
	}

	log.Infof("Range table downloaded successfully")
	return true, nil
}

// Package snapshots caches raw page HTML and analysis artifacts on disk so
// scans can be rescored without refetching.
package snapshots

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/defaultanswer/readiness-core/models"
)

const (
	DefaultBaseDir = "da-snapshots"
	rawHTMLDir     = "raw"
	analysisDir    = "analysis"
)

// Cache stores per-URL artifacts under a base directory. maxAge controls
// freshness; zero or negative means artifacts never expire.
type Cache struct {
	baseDir string
	maxAge  time.Duration
}

// NewCache ensures the artifact directories exist.
func NewCache(baseDir string, maxAge time.Duration) (*Cache, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	for _, dir := range []string{rawHTMLDir, analysisDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0750); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	return &Cache{baseDir: baseDir, maxAge: maxAge}, nil
}

var invalidFilenameChar = regexp.MustCompile(`[^a-zA-Z0-9\-_]+`)

// sanitizeSlug creates a filesystem-safe slug from a URL, kept readable so
// a directory listing still tells you which site a snapshot belongs to.
func sanitizeSlug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		safe := invalidFilenameChar.ReplaceAllString(rawURL, "_")
		return strings.Trim(safe, "_")
	}

	hostPart := strings.ReplaceAll(u.Host, ".", "_")
	pathPart := strings.TrimPrefix(u.Path, "/")
	pathPart = invalidFilenameChar.ReplaceAllString(pathPart, "_")
	pathPart = strings.Trim(pathPart, "_")

	if pathPart == "" {
		return hostPart
	}
	return fmt.Sprintf("%s_%s", hostPart, pathPart)
}

func shortHash(normalizedURL string) string {
	hash := sha256.Sum256([]byte(normalizedURL))
	return fmt.Sprintf("%x", hash[:6])
}

func (c *Cache) artifactPath(dir, rawURL, ext string) string {
	filename := fmt.Sprintf("%s-%s%s", sanitizeSlug(rawURL), shortHash(models.NormalizeURL(rawURL)), ext)
	return filepath.Join(c.baseDir, dir, filename)
}

// getFresh reads an artifact if it exists and is within maxAge.
func (c *Cache) getFresh(path string) ([]byte, bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error statting artifact: %w", err)
	}

	if c.maxAge > 0 && time.Since(info.ModTime()) > c.maxAge {
		return nil, false, nil // stale
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, false, fmt.Errorf("error reading artifact: %w", err)
	}
	return data, true, nil
}

// GetRawHTML retrieves cached page HTML if fresh.
func (c *Cache) GetRawHTML(rawURL string) ([]byte, bool, error) {
	return c.getFresh(c.artifactPath(rawHTMLDir, rawURL, ".html"))
}

// SetRawHTML stores fetched page HTML.
func (c *Cache) SetRawHTML(rawURL string, data []byte) error {
	if err := os.WriteFile(c.artifactPath(rawHTMLDir, rawURL, ".html"), data, 0600); err != nil {
		return fmt.Errorf("failed to write raw HTML: %w", err)
	}
	return nil
}

// GetAnalysis retrieves a cached analysis artifact if fresh.
func (c *Cache) GetAnalysis(rawURL string) ([]byte, bool, error) {
	return c.getFresh(c.artifactPath(analysisDir, rawURL, ".json"))
}

// SetAnalysis stores an analysis artifact.
func (c *Cache) SetAnalysis(rawURL string, data []byte) error {
	if err := os.WriteFile(c.artifactPath(analysisDir, rawURL, ".json"), data, 0600); err != nil {
		return fmt.Errorf("failed to write analysis artifact: %w", err)
	}
	return nil
}

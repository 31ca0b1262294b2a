package tts

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CacheInfo summarizes the synthesized-audio cache.
type CacheInfo struct {
	Dir          string
	Exists       bool
	Files        int64
	TotalBytes   int64
	LastModified time.Time
}

// SizeMB reports the cache size in megabytes.
func (c CacheInfo) SizeMB() float64 {
	return float64(c.TotalBytes) / (1024 * 1024)
}

// CacheStats walks the audio cache and tallies clip files.
func CacheStats(dir string) (CacheInfo, error) {
	info := CacheInfo{Dir: dir}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return info, nil
	}
	info.Exists = true

	err := filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil // keep walking past unreadable entries
		}
		if fi.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(fi.Name()))
		if ext != ".mp3" && ext != ".wav" {
			return nil
		}
		info.Files++
		info.TotalBytes += fi.Size()
		if fi.ModTime().After(info.LastModified) {
			info.LastModified = fi.ModTime()
		}
		return nil
	})
	return info, err
}

// ClearCache removes every cached clip.
func ClearCache(dir string) error {
	return os.RemoveAll(dir)
}

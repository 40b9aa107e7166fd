package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"genwell/internal/errors"
)

// FileInfo describes a discovered dataset file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// datasetExtensions are the input formats the loader understands
var datasetExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FindDatasetFiles lists the dataset files in dir, newest first
func FindDatasetFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewLoadError("read data directory", err).WithContext("dir", dir)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !datasetExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// LatestDataset returns the most recently modified dataset file in dir
func LatestDataset(dir string) (FileInfo, error) {
	files, err := FindDatasetFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}
	if len(files) == 0 {
		return FileInfo{}, errors.NewLoadError("no dataset files found", nil).WithContext("dir", dir)
	}
	return files[0], nil
}

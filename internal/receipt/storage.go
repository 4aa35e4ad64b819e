package receipt

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageStore defines the interface for receipt image storage.
type ImageStore interface {
	// Save stores the image bytes and returns the name to fetch them
	// back with.
	Save(filename string, data []byte) (string, error)

	// Get retrieves previously stored image bytes.
	Get(name string) ([]byte, error)

	// Delete removes a stored image.
	Delete(name string) error
}

// DiskImageStore implements ImageStore on a local directory.
type DiskImageStore struct {
	dir string
}

// NewDiskImageStore creates the directory if needed and returns a
// store rooted there.
func NewDiskImageStore(dir string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &DiskImageStore{dir: dir}, nil
}

// Save writes the image under the store directory. The stored name is
// always the base name, so a crafted filename cannot escape the
// directory.
func (s *DiskImageStore) Save(filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return name, nil
}

// Get reads a stored image back.
func (s *DiskImageStore) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}

// Delete removes a stored image.
func (s *DiskImageStore) Delete(name string) error {
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"marketplace/models"
)

// ErrCorrupt is returned by Storage.Load when the persisted cart blob
// cannot be decoded. Callers treat it as "no saved cart".
var ErrCorrupt = errors.New("client: corrupt cart data")

// Storage persists the cart between sessions.
type Storage interface {
	// Load returns the persisted cart, or (nil, nil) when nothing has
	// been saved yet.
	Load() (*models.Cart, error)
	Save(cart *models.Cart) error
}

// FileStorage keeps the cart as a JSON file on disk.
type FileStorage struct {
	path string
}

// NewFileStorage creates a FileStorage writing to path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (*models.Cart, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &cart, nil
}

func (s *FileStorage) Save(cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	return nil
}

// MemStorage keeps the cart in memory. Used in tests.
type MemStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemStorage creates an empty MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{}
}

// SetRaw overwrites the stored blob with arbitrary bytes.
func (s *MemStorage) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
}

func (s *MemStorage) Load() (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}

	var cart models.Cart
	if err := json.Unmarshal(s.data, &cart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &cart, nil
}

func (s *MemStorage) Save(cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

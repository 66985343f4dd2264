package journal

import (
	"errors"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// memoryBackend keeps the collection in memory. A nil collection stands for
// a missing file.
type memoryBackend struct {
	entries types.Collection
	loadErr error
	saveErr error
	loads   int
	saves   int
}

func (m *memoryBackend) Load() (types.Collection, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.entries == nil {
		return nil, types.ErrNoData
	}
	return m.entries.Clone(), nil
}

func (m *memoryBackend) Save(entries types.Collection) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = entries.Clone()
	return nil
}

var errDiskFull = errors.New("no space left on device")

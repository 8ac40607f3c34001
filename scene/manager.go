package scene

import (
	"github.com/plus3/sandbox/ecs"
	"go.uber.org/zap"
)

// Manager tracks the file backing the open scene and whether it has unsaved
// edits.
type Manager struct {
	storage    *ecs.Storage
	serializer *Serializer
	logger     *zap.Logger

	path  string
	dirty bool
}

func NewManager(storage *ecs.Storage, serializer *Serializer, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{storage: storage, serializer: serializer, logger: logger}
}

func (m *Manager) Path() string { return m.path }
func (m *Manager) Dirty() bool  { return m.dirty }
func (m *Manager) MarkDirty()   { m.dirty = true }
func (m *Manager) MarkClean()   { m.dirty = false }

// Save writes the scene to its current path.
func (m *Manager) Save() error {
	if m.path == "" {
		return ErrNoScenePath
	}
	return m.SaveAs(m.path)
}

// SaveAs writes the scene to path and makes path current.
func (m *Manager) SaveAs(path string) error {
	if err := m.serializer.Save(m.storage, path); err != nil {
		m.logger.Error("save scene", zap.String("path", path), zap.Error(err))
		return err
	}
	m.path = path
	m.dirty = false
	m.logger.Info("scene saved", zap.String("path", path))
	return nil
}

// SaveAsPrefab writes the scene to path without changing the current path or
// dirty state.
func (m *Manager) SaveAsPrefab(path string) error {
	if err := m.serializer.Save(m.storage, path); err != nil {
		m.logger.Error("save prefab", zap.String("path", path), zap.Error(err))
		return err
	}
	m.logger.Info("prefab saved", zap.String("path", path))
	return nil
}

// Load replaces the scene with the file at path.
func (m *Manager) Load(path string) error {
	if err := m.serializer.Load(m.storage, path); err != nil {
		m.logger.Error("load scene", zap.String("path", path), zap.Error(err))
		return err
	}
	m.path = path
	m.dirty = false
	m.logger.Info("scene loaded", zap.String("path", path))
	return nil
}

// SpawnPrefab adds the prefab at path to the scene.
func (m *Manager) SpawnPrefab(path string) ([]ecs.EntityId, error) {
	ids, err := m.serializer.SpawnPrefab(m.storage, path)
	if err != nil {
		m.logger.Error("spawn prefab", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	m.dirty = true
	m.logger.Info("prefab spawned", zap.String("path", path), zap.Int("entities", len(ids)))
	return ids, nil
}

// New clears the scene and forgets its path.
func (m *Manager) New() {
	removed := m.serializer.Clear(m.storage)
	m.path = ""
	m.dirty = false
	m.logger.Info("new scene", zap.Int("removed", removed))
}

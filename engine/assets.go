package engine

import (
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/plus3/sandbox/ecs"
)

// ImageLoader resolves an asset path to a texture.
type ImageLoader interface {
	LoadImage(path string) (*ebiten.Image, error)
}

// AssetCache loads images from a root directory once per path. Failed loads
// are remembered so a broken path is not retried every frame.
type AssetCache struct {
	root   string
	images map[string]*ebiten.Image
	failed map[string]error
}

func NewAssetCache(root string) *AssetCache {
	return &AssetCache{
		root:   root,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]error),
	}
}

func (c *AssetCache) Root() string {
	return c.root
}

func (c *AssetCache) LoadImage(path string) (*ebiten.Image, error) {
	if img, ok := c.images[path]; ok {
		return img, nil
	}
	if err, ok := c.failed[path]; ok {
		return nil, err
	}

	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(c.root, path))
	if err != nil {
		err = errors.Wrapf(err, "load image %q", path)
		c.failed[path] = err
		return nil, err
	}
	c.images[path] = img
	return img, nil
}

// Forget drops path from the cache so the next load reads it again.
func (c *AssetCache) Forget(path string) {
	delete(c.images, path)
	delete(c.failed, path)
}

// AssetSyncSystem loads the image named by each entity's AssetPath into its
// Sprite whenever the path changes.
type AssetSyncSystem struct {
	Loader ImageLoader
	Logger *zap.Logger

	Sprites ecs.Query[struct {
		*Sprite
		*AssetPath
	}]
}

func (s *AssetSyncSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Sprites.Iter() {
		path := item.AssetPath.Path
		if path == item.Sprite.loaded {
			continue
		}
		item.Sprite.loaded = path
		item.Sprite.image = nil
		if path == "" {
			continue
		}

		img, err := s.Loader.LoadImage(path)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("asset load failed", zap.Uint64("entity", uint64(id)), zap.Error(err))
			}
			continue
		}
		item.Sprite.image = img
		if item.Sprite.Width == 0 && item.Sprite.Height == 0 {
			b := img.Bounds()
			item.Sprite.Width, item.Sprite.Height = float32(b.Dx()), float32(b.Dy())
		}
	}
}

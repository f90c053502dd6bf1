// Package assets resolves asset paths under a root and owns decoded textures.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"

	"github.com/plus3/platform/render"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrNoRoot   = errors.New("asset root is not set")
	ErrNotFound = errors.New("asset not found")
)

type texture struct {
	path string
	img  image.Image
}

// Database resolves asset paths and caches decoded textures by path. Ids are
// dense and start at 1.
type Database struct {
	log  *zap.Logger
	root fs.FS
	dir  string

	textures []texture
	byPath   map[string]render.TextureID
}

func NewDatabase(log *zap.Logger) *Database {
	if log == nil {
		log = zap.NewNop()
	}
	return &Database{
		log:    log,
		byPath: make(map[string]render.TextureID),
	}
}

// SetRoot roots the database at a directory on disk.
func (db *Database) SetRoot(dir string) {
	db.dir = dir
	db.SetFS(os.DirFS(dir))
}

// SetFS roots the database at an arbitrary file system.
func (db *Database) SetFS(root fs.FS) {
	db.root = root
	db.log.Info("asset root set", zap.String("dir", db.dir))
}

// Root returns the directory passed to SetRoot, if any.
func (db *Database) Root() string { return db.dir }

// Path joins segments into a root-relative asset path and verifies it exists.
func (db *Database) Path(segments ...string) (string, error) {
	if db.root == nil {
		return "", ErrNoRoot
	}
	p := path.Join(segments...)
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, p)
	}
	if _, err := fs.Stat(db.root, p); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return p, nil
}

// ReadFile returns the raw contents of a root-relative asset.
func (db *Database) ReadFile(p string) ([]byte, error) {
	if db.root == nil {
		return nil, ErrNoRoot
	}
	b, err := fs.ReadFile(db.root, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return b, err
}

// LoadTexture decodes the image at p and returns its id. Loading the same
// path twice returns the cached id.
func (db *Database) LoadTexture(p string) (render.TextureID, error) {
	if id, ok := db.byPath[p]; ok {
		return id, nil
	}
	if db.root == nil {
		return render.InvalidTextureID, ErrNoRoot
	}

	f, err := db.root.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return render.InvalidTextureID, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return render.InvalidTextureID, fmt.Errorf("open texture %s: %w", p, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return render.InvalidTextureID, fmt.Errorf("decode texture %s: %w", p, err)
	}

	db.textures = append(db.textures, texture{path: p, img: img})
	id := render.TextureID(len(db.textures))
	db.byPath[p] = id

	b := img.Bounds()
	db.log.Debug("texture loaded",
		zap.String("path", p),
		zap.String("format", format),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Uint32("id", uint32(id)),
	)
	return id, nil
}

// Texture returns the decoded image for id.
func (db *Database) Texture(id render.TextureID) (image.Image, bool) {
	if id == render.InvalidTextureID || int(id) > len(db.textures) {
		return nil, false
	}
	return db.textures[id-1].img, true
}

// TexturePath returns the path a texture was loaded from.
func (db *Database) TexturePath(id render.TextureID) (string, bool) {
	if id == render.InvalidTextureID || int(id) > len(db.textures) {
		return "", false
	}
	return db.textures[id-1].path, true
}

func (db *Database) TextureCount() int { return len(db.textures) }

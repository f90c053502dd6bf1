package backend

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/platform/render"
	"go.uber.org/zap"
)

// Renderer draws queued requests. Decoded textures are uploaded to the GPU
// the first time they are drawn and kept for the renderer's lifetime.
type Renderer struct {
	log    *zap.Logger
	source render.TextureSource[image.Image]

	frame  render.Frame
	images *intmap.Map[render.TextureID, *ebiten.Image]
	warned *intmap.Map[render.TextureID, struct{}]
	drawn  int
}

func NewRenderer(source render.TextureSource[image.Image], log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		log:    log,
		source: source,
		images: intmap.New[render.TextureID, *ebiten.Image](32),
		warned: intmap.New[render.TextureID, struct{}](8),
	}
}

// Submit takes the requests queued by the last update. They are drawn by
// every Draw until the next Submit.
func (r *Renderer) Submit(q *render.Queue) {
	r.frame.Take(q)
}

// Pending is the number of requests each Draw will attempt.
func (r *Renderer) Pending() int { return r.frame.Len() }

// Draw renders the submitted frame onto screen. alpha interpolates between
// each request's previous and current position. Sprites are centred on their
// position.
func (r *Renderer) Draw(screen *ebiten.Image, alpha float32) {
	r.drawn = 0
	for d := range r.frame.Requests() {
		img, ok := r.image(d.TextureID)
		if !ok {
			continue
		}
		bounds := img.Bounds()
		pos := d.Interpolated(alpha)

		var op ebiten.DrawImageOptions
		op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
		op.GeoM.Scale(float64(d.Scale.X), float64(d.Scale.Y))
		op.GeoM.Translate(float64(pos.X), float64(pos.Y))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, &op)
		r.drawn++
	}
}

// Drawn is the number of requests drawn by the last Draw.
func (r *Renderer) Drawn() int { return r.drawn }

func (r *Renderer) image(id render.TextureID) (*ebiten.Image, bool) {
	if img, ok := r.images.Get(id); ok {
		return img, true
	}
	src, ok := r.source.Texture(id)
	if !ok {
		if _, seen := r.warned.Get(id); !seen {
			r.warned.Put(id, struct{}{})
			r.log.Warn("draw request for unknown texture", zap.Uint32("texture", uint32(id)))
		}
		return nil, false
	}
	img := ebiten.NewImageFromImage(src)
	r.images.Put(id, img)
	return img, true
}

// Forget drops every uploaded texture.
func (r *Renderer) Forget() {
	r.images.Clear()
	r.warned.Clear()
}

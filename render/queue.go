// Package render holds the per-frame submission queue that components fill
// during render tick and the renderer drains afterwards.
package render

import (
	"iter"

	"github.com/plus3/platform/vmath"
)

// TextureID identifies a loaded texture. The zero value is never assigned.
type TextureID uint32

const InvalidTextureID TextureID = 0

// TextureSource resolves texture ids to loaded handles.
type TextureSource[T any] interface {
	Texture(id TextureID) (T, bool)
}

// Data is one draw request.
type Data struct {
	TextureID    TextureID
	Position     vmath.Vec2
	PrevPosition vmath.Vec2 // kept for interpolation by the renderer
	Scale        vmath.Vec2
}

// Interpolated returns the draw position at alpha between the previous and
// the current position. alpha = 1 is the current position.
func (d Data) Interpolated(alpha float32) vmath.Vec2 {
	return d.PrevPosition.Lerp(d.Position, alpha)
}

// Queue is a transient FIFO of draw requests. It is rebuilt every frame.
type Queue struct {
	items []Data
	head  int
}

func NewQueue() *Queue {
	return &Queue{items: make([]Data, 0, 64)}
}

func (q *Queue) Enqueue(d Data) {
	q.items = append(q.items, d)
}

// Dequeue pops the oldest request.
func (q *Queue) Dequeue() (Data, bool) {
	if q.head >= len(q.items) {
		q.reset()
		return Data{}, false
	}
	d := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.reset()
	}
	return d, true
}

// Drain yields every queued request in submission order and leaves the queue
// empty, including when the caller stops early.
func (q *Queue) Drain() iter.Seq[Data] {
	return func(yield func(Data) bool) {
		defer q.reset()
		for q.head < len(q.items) {
			d := q.items[q.head]
			q.head++
			if !yield(d) {
				return
			}
		}
	}
}

// Clear drops every queued request.
func (q *Queue) Clear() {
	q.reset()
}

func (q *Queue) Len() int {
	return len(q.items) - q.head
}

func (q *Queue) reset() {
	q.items = q.items[:0]
	q.head = 0
}

package render

import "iter"

// Frame is the set of draw requests handed to the renderer at the end of an
// update. It can be drawn any number of times until the next Take, since a
// display may refresh more often than the simulation ticks.
type Frame struct {
	requests []Data
}

// Take replaces the frame's contents with everything in q, leaving q empty.
func (f *Frame) Take(q *Queue) {
	f.requests = f.requests[:0]
	for d := range q.Drain() {
		f.requests = append(f.requests, d)
	}
}

// Requests yields the frame's requests in submission order without
// consuming them.
func (f *Frame) Requests() iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, d := range f.requests {
			if !yield(d) {
				return
			}
		}
	}
}

func (f *Frame) Len() int { return len(f.requests) }

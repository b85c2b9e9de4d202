// Package saver writes rendered data to caller-owned sinks.
//
// Formatting lives entirely in the renderable; a saver only moves the
// rendered text into the sink. The sink is never opened, closed or wrapped
// here: callers own it for the duration of a single Save call.
package saver

import (
	"io"

	"github.com/andri/datasaver/pkg/render"
)

// Saver writes the rendered text of a renderable to a sink.
type Saver interface {
	Save(w io.Writer, r render.Renderable) error
}

// TextSaver saves plain text renderings.
type TextSaver struct{}

// Save implements Saver.
func (TextSaver) Save(w io.Writer, r render.Renderable) error {
	return writeRendered(w, r)
}

// HTMLSaver saves HTML renderings.
type HTMLSaver struct{}

// Save implements Saver.
func (HTMLSaver) Save(w io.Writer, r render.Renderable) error {
	return writeRendered(w, r)
}

// JSONSaver saves JSON renderings.
type JSONSaver struct{}

// Save implements Saver.
func (JSONSaver) Save(w io.Writer, r render.Renderable) error {
	return writeRendered(w, r)
}

// writeRendered renders before touching the sink so a render failure leaves
// it untouched. Write errors are returned as the sink reported them.
func writeRendered(w io.Writer, r render.Renderable) error {
	text, err := r.Render()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// SaveData saves r to w using s. It carries no logic of its own, so new
// format and saver pairs plug in without changing it.
func SaveData(w io.Writer, r render.Renderable, s Saver) error {
	return s.Save(w, r)
}

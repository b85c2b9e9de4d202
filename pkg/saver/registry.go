package saver

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/andri/datasaver/pkg/render"
)

// ErrFormatMismatch is returned by a Strict saver when the renderable's
// format differs from the one the saver was bound to.
var ErrFormatMismatch = errors.New("saver format mismatch")

var (
	registryMu sync.RWMutex
	registry   = map[render.Format]Saver{
		render.FormatText: TextSaver{},
		render.FormatHTML: HTMLSaver{},
		render.FormatJSON: JSONSaver{},
	}
)

// Register binds s as the saver paired with f. Last registration wins.
func Register(f render.Format, s Saver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f] = s
}

// ForFormat returns the saver conventionally paired with f.
func ForFormat(f render.Format) (Saver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: no saver registered for %s", render.ErrInvalidFormat, f)
	}
	return s, nil
}

// Name returns a short display name for a saver, e.g. "html" for HTMLSaver.
func Name(s Saver) string {
	switch v := s.(type) {
	case TextSaver, *TextSaver:
		return render.FormatText.String()
	case HTMLSaver, *HTMLSaver:
		return render.FormatHTML.String()
	case JSONSaver, *JSONSaver:
		return render.FormatJSON.String()
	case *strictSaver:
		return Name(v.next)
	default:
		return fmt.Sprintf("%T", s)
	}
}

// formatted is implemented by renderables that expose their format,
// such as render.Data.
type formatted interface {
	Format() render.Format
}

type strictSaver struct {
	format render.Format
	next   Saver
}

// Strict wraps s so it refuses renderables whose format differs from f.
// Renderables that do not expose a format are passed through unchecked.
func Strict(f render.Format, s Saver) Saver {
	return &strictSaver{format: f, next: s}
}

func (s *strictSaver) Save(w io.Writer, r render.Renderable) error {
	if fr, ok := r.(formatted); ok && fr.Format() != s.format {
		return fmt.Errorf("%w: %s saver given %s data", ErrFormatMismatch, s.format, fr.Format())
	}
	return s.next.Save(w, r)
}

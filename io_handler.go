package lanelet

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Parser decodes one file format into a lanelet map. Parse always works in
// the robust fashion: malformed elements are skipped and reported through the
// returned diagnostics, one entry per failing element, while the rest of the
// map is assembled. The returned error is reserved for top-level failures
// (unreadable input) that make any progress impossible.
type Parser interface {
	Parse(r io.Reader) (*LaneletMap, ErrorMessages, error)
}

// Writer encodes a lanelet map into one file format. Elements that can not
// be serialized are skipped and reported through the returned diagnostics;
// the output stays well-formed for everything that succeeded.
type Writer interface {
	Write(w io.Writer, m *LaneletMap) (ErrorMessages, error)
}

// ParserFactory builds a parser for a single call. The projector and the
// configuration are borrowed from the caller: the parser may use them during
// Parse but must not retain them afterwards.
type ParserFactory func(projector Projector, config Configuration) Parser

// WriterFactory builds a writer for a single call, under the same borrowing
// rules as ParserFactory.
type WriterFactory func(projector Projector, config Configuration) Writer

type formatHandler struct {
	extension string
	name      string
	newParser ParserFactory
	newWriter WriterFactory
}

type handlerRegistry struct {
	mu          sync.RWMutex
	byExtension map[string]*formatHandler
	byName      map[string]*formatHandler
}

var formats = &handlerRegistry{
	byExtension: make(map[string]*formatHandler),
	byName:      make(map[string]*formatHandler),
}

// RegisterFormat adds a handler for a file extension (including the leading
// dot, matched case-sensitively) and a handler name. Either factory may be
// nil when the format supports only one direction. New formats may be
// registered by code outside this package before the first load or write
// call; registering an extension or name twice is a programming error and
// panics.
func RegisterFormat(extension, name string, parser ParserFactory, writer WriterFactory) {
	formats.mu.Lock()
	defer formats.mu.Unlock()
	if _, ok := formats.byExtension[extension]; ok {
		panic(fmt.Sprintf("lanelet: format for extension '%s' registered twice", extension))
	}
	if _, ok := formats.byName[name]; ok {
		panic(fmt.Sprintf("lanelet: format with name '%s' registered twice", name))
	}
	handler := &formatHandler{
		extension: extension,
		name:      name,
		newParser: parser,
		newWriter: writer,
	}
	formats.byExtension[extension] = handler
	formats.byName[name] = handler
}

// lookupFormat resolves a handler by explicit name if given, otherwise by
// the extension of the path
func lookupFormat(path, formatName string) (*formatHandler, error) {
	formats.mu.RLock()
	defer formats.mu.RUnlock()
	if formatName != "" {
		if handler, ok := formats.byName[formatName]; ok {
			return handler, nil
		}
		return nil, errors.Wrapf(ErrUnsupportedFormat, "no handler named '%s'", formatName)
	}
	ext := filepath.Ext(path)
	if handler, ok := formats.byExtension[ext]; ok {
		return handler, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "no handler for extension '%s' of file '%s'", ext, path)
}

package lanelet

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
)

// IOOptions Tunes a single load or write call
type IOOptions struct {
	config Configuration
	format string
}

// WithConfiguration Passes format specific options to the handler of a
// single load or write call
func WithConfiguration(config Configuration) func(*IOOptions) {
	return func(opts *IOOptions) {
		opts.config = config
	}
}

// WithFormat Selects the handler by its registered name instead of the file
// extension
func WithFormat(name string) func(*IOOptions) {
	return func(opts *IOOptions) {
		opts.format = name
	}
}

func applyIOOptions(options []func(*IOOptions)) *IOOptions {
	opts := &IOOptions{config: Configuration{}}
	for _, option := range options {
		option(opts)
	}
	return opts
}

// Load Reads a map from a file, selecting the handler by the file extension.
// Strict mode: the first malformed element aborts the whole load with a
// ParseError. Use LoadRobust for externally-authored data.
func Load(filename string, projector Projector, options ...func(*IOOptions)) (*LaneletMap, error) {
	m, errs, err := LoadRobust(filename, projector, options...)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, &ParseError{Location: filename, Message: errs[0]}
	}
	return m, nil
}

// LoadWithOrigin Reads a map using the default mercator projection anchored
// at given origin
func LoadWithOrigin(filename string, origin Origin, options ...func(*IOOptions)) (*LaneletMap, error) {
	return Load(filename, NewMercatorProjector(origin), options...)
}

// LoadRobust Reads a map collecting diagnostics instead of aborting: each
// malformed element is skipped and produces exactly one entry in the
// returned messages, the rest of the map is returned. The map never
// contains half-constructed elements. Top-level failures (unsupported
// format, unreadable file) are still returned as error.
func LoadRobust(filename string, projector Projector, options ...func(*IOOptions)) (*LaneletMap, ErrorMessages, error) {
	opts := applyIOOptions(options)
	handler, err := lookupFormat(filename, opts.format)
	if err != nil {
		return nil, nil, err
	}
	if handler.newParser == nil {
		return nil, nil, errors.Wrapf(ErrUnsupportedFormat, "format '%s' does not support loading", handler.name)
	}
	if projector == nil {
		return nil, nil, errors.New("projector must not be nil")
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "can not open '%s'", filename)
	}
	defer file.Close()
	parser := handler.newParser(projector, opts.config)
	return parser.Parse(file)
}

// Write Writes a map to a file, selecting the handler by the file extension.
// Strict mode: the first element that can not be serialized aborts the whole
// write and no file is created.
func Write(filename string, m *LaneletMap, projector Projector, options ...func(*IOOptions)) error {
	opts := applyIOOptions(options)
	writer, err := newWriterFor(filename, projector, opts)
	if err != nil {
		return err
	}
	// serialize to memory first so that a failing element does not leave a
	// partial file behind
	buf := &bytes.Buffer{}
	errs, err := writer.Write(buf, m)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errors.New(errs[0])
	}
	return errors.Wrapf(os.WriteFile(filename, buf.Bytes(), 0644), "can not write '%s'", filename)
}

// WriteRobust Writes a map collecting diagnostics instead of aborting:
// elements that can not be serialized are skipped and recorded, the file
// written stays well-formed for the elements that succeeded.
func WriteRobust(filename string, m *LaneletMap, projector Projector, options ...func(*IOOptions)) (ErrorMessages, error) {
	opts := applyIOOptions(options)
	writer, err := newWriterFor(filename, projector, opts)
	if err != nil {
		return nil, err
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "can not create '%s'", filename)
	}
	defer file.Close()
	errs, err := writer.Write(file, m)
	if err != nil {
		return errs, err
	}
	return errs, errors.Wrapf(file.Close(), "can not finish writing '%s'", filename)
}

func newWriterFor(filename string, projector Projector, opts *IOOptions) (Writer, error) {
	handler, err := lookupFormat(filename, opts.format)
	if err != nil {
		return nil, err
	}
	if handler.newWriter == nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format '%s' does not support writing", handler.name)
	}
	if projector == nil {
		return nil, errors.New("projector must not be nil")
	}
	return handler.newWriter(projector, opts.config), nil
}

package lang

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed languages/*.yaml
var builtinFS embed.FS

// builtinDir is the directory of the embedded definitions.
const builtinDir = "languages"

//nolint:gochecknoglobals // Parsed once; the embedded data never changes.
var loadBuiltin = sync.OnceValues(func() ([]Definition, error) {
	return LoadFS(builtinFS, builtinDir)
})

// Builtin returns the embedded language definitions sorted by ID.
// The returned slice is shared; do not mutate it.
func Builtin() ([]Definition, error) {
	return loadBuiltin()
}

// MustBuiltin is like Builtin but panics if the embedded data is malformed.
func MustBuiltin() []Definition {
	defs, err := Builtin()
	if err != nil {
		panic(err)
	}
	return defs
}

// Parse decodes and validates one YAML definition.
// Unknown fields are rejected so typos in tables fail loudly.
func Parse(data []byte) (Definition, error) {
	var def Definition

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return Definition{}, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
		}
		return Definition{}, fmt.Errorf("parse YAML: %w", err)
	}

	if err := def.Validate(); err != nil {
		return Definition{}, err
	}

	return def, nil
}

// LoadFile reads one definition from a YAML file.
func LoadFile(filePath string) (Definition, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Definition{}, fmt.Errorf("read file: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", filePath, err)
	}
	return def, nil
}

// LoadDir reads every *.yaml and *.yml definition in a directory.
func LoadDir(dir string) ([]Definition, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads every *.yaml and *.yml definition in dir of fsys,
// sorted by ID. Subdirectories are not searched.
func LoadFS(fsys fs.FS, dir string) ([]Definition, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var defs []Definition
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		def, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defs = append(defs, def)
	}

	slices.SortFunc(defs, func(a, b Definition) int {
		return strings.Compare(a.ID, b.ID)
	})

	return defs, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Package registry dispatches a language name to its scanner.
//
// Definitions are registered up front; each language's scanner is built on
// first use and cached for the life of the registry. Compiled patterns are
// shared across languages through a pattern.Cache.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gxhighlight/pkg/csvscan"
	"github.com/yaklabco/gxhighlight/pkg/highlight"
	"github.com/yaklabco/gxhighlight/pkg/lang"
	"github.com/yaklabco/gxhighlight/pkg/langdetect"
	"github.com/yaklabco/gxhighlight/pkg/pattern"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// ErrDuplicateLanguage is returned when an ID, alias or extension is
// claimed by two languages.
var ErrDuplicateLanguage = errors.New("duplicate language")

// ErrUnknownLanguage is returned by AddAlias for an unregistered target.
var ErrUnknownLanguage = errors.New("unknown language")

// Registry maps language IDs and aliases to scanners.
// A Registry is safe for concurrent use.
type Registry struct {
	cache *pattern.Cache

	mu          sync.RWMutex
	languages   []*language
	byName      map[string]*language // lower-cased ID or alias
	byDisplay   map[string]*language // lower-cased display name
	byExtension map[string]*language // lower-cased extension with dot
}

// language is one registered definition and its lazily built scanner.
type language struct {
	def   lang.Definition
	build func() (highlight.Scanner, error)
}

// Handle refers to a resolved language. The zero Handle scans everything
// as Normal text.
type Handle struct {
	language *language
}

// ID returns the canonical language ID, or "" for the zero Handle.
func (h Handle) ID() string {
	if h.language == nil {
		return ""
	}
	return h.language.def.ID
}

// Name returns the display name, or "" for the zero Handle.
func (h Handle) Name() string {
	if h.language == nil {
		return ""
	}
	return h.language.def.DisplayName()
}

// IsZero reports whether h refers to no language.
func (h Handle) IsZero() bool {
	return h.language == nil
}

// New returns a registry of defs. Patterns are compiled through cache, which
// may be shared with other registries. Definitions are validated but not
// compiled; call Warm to compile everything eagerly.
func New(cache *pattern.Cache, defs ...lang.Definition) (*Registry, error) {
	if cache == nil {
		cache = pattern.NewCache()
	}

	reg := &Registry{
		cache:       cache,
		byName:      make(map[string]*language),
		byDisplay:   make(map[string]*language),
		byExtension: make(map[string]*language),
	}

	for _, def := range defs {
		if err := reg.register(def); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func (r *Registry) register(def lang.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	entry := &language{def: def}
	entry.build = sync.OnceValues(func() (highlight.Scanner, error) {
		return newScanner(r.cache, def)
	})

	for _, name := range def.Names() {
		if other, ok := r.byName[name]; ok && other != entry {
			return fmt.Errorf("%w: %q is claimed by %s and %s", ErrDuplicateLanguage, name, other.def.ID, def.ID)
		}
		r.byName[name] = entry
	}
	for _, ext := range def.Extensions {
		ext = strings.ToLower(ext)
		if other, ok := r.byExtension[ext]; ok && other != entry {
			return fmt.Errorf("%w: extension %q is claimed by %s and %s", ErrDuplicateLanguage, ext, other.def.ID, def.ID)
		}
		r.byExtension[ext] = entry
	}
	display := strings.ToLower(def.DisplayName())
	if _, ok := r.byDisplay[display]; !ok {
		r.byDisplay[display] = entry
	}

	r.languages = append(r.languages, entry)
	return nil
}

// newScanner builds the scanner for one definition.
func newScanner(cache *pattern.Cache, def lang.Definition) (highlight.Scanner, error) {
	switch def.EffectiveStrategy() {
	case lang.StrategyCSV:
		return csvscan.New(csvscan.WithDelimiter(def.DelimiterRune())), nil
	case lang.StrategyPatterns:
		patterns, err := pattern.Build(cache, def.Patterns)
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", def.ID, err)
		}
		return highlight.NewPatternScanner(patterns), nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown strategy %q", lang.ErrInvalidDefinition, def.ID, def.Strategy)
	}
}

// AddAlias maps an extra alias to a registered language ID or alias.
func (r *Registry) AddAlias(alias, target string) error {
	alias = normalizeName(alias)
	if alias == "" {
		return fmt.Errorf("%w: empty alias", lang.ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byName[normalizeName(target)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, target)
	}
	if other, ok := r.byName[alias]; ok && other != entry {
		return fmt.Errorf("%w: %q is claimed by %s", ErrDuplicateLanguage, alias, other.def.ID)
	}
	r.byName[alias] = entry
	return nil
}

// Resolve finds a language by ID or declared alias, ignoring case.
//
// A declared ID or alias always wins. Only when none matches is the name
// tried as a linguist alias (e.g. "golang", "c++", "macruby") and resolved
// through its linguist display name. Names unknown to both report false.
func (r *Registry) Resolve(idOrAlias string) (Handle, bool) {
	name := normalizeName(idOrAlias)
	if name == "" {
		return Handle{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.byName[name]; ok {
		return Handle{language: entry}, true
	}

	if linguist, ok := enry.GetLanguageByAlias(name); ok {
		if entry, ok := r.lookupLinguist(linguist); ok {
			return Handle{language: entry}, true
		}
	}

	return Handle{}, false
}

// lookupLinguist resolves a linguist language name. Callers hold r.mu.
func (r *Registry) lookupLinguist(linguist string) (*language, bool) {
	if entry, ok := r.byDisplay[strings.ToLower(linguist)]; ok {
		return entry, true
	}
	entry, ok := r.byName[langdetect.Normalize(linguist)]
	return entry, ok
}

// ResolveFile finds the language of a file from its extension, then its
// name and content via go-enry, then content heuristics.
func (r *Registry) ResolveFile(filename string, content []byte) (Handle, bool) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		r.mu.RLock()
		entry, ok := r.byExtension[ext]
		r.mu.RUnlock()
		if ok {
			return Handle{language: entry}, true
		}
	}

	detected := langdetect.DetectFile(filepath.Base(filename), content)
	if detected == langdetect.Text {
		return Handle{}, false
	}
	return r.Resolve(detected)
}

// Scan tokenizes text with the language behind h. A zero Handle yields a
// single Normal token. It panics if the language's table is malformed;
// call Warm at startup to surface that as an error instead.
func (r *Registry) Scan(h Handle, text string) []token.Token {
	if h.language == nil {
		return highlight.Plain(text)
	}
	if text == "" {
		return nil
	}

	scanner, err := h.language.build()
	if err != nil {
		panic(err)
	}
	return scanner.Scan(text)
}

// ScanLanguage resolves idOrAlias and tokenizes text. Unknown languages
// yield a single Normal token; empty text yields no tokens.
func (r *Registry) ScanLanguage(idOrAlias, text string) []token.Token {
	h, _ := r.Resolve(idOrAlias)
	return r.Scan(h, text)
}

// Scanner returns the scanner behind h, building it if needed.
func (r *Registry) Scanner(h Handle) (highlight.Scanner, error) {
	if h.language == nil {
		return highlight.PlainScanner, nil
	}
	return h.language.build()
}

// Warm builds every registered scanner so malformed tables surface as an
// error at startup. Failures of several languages are joined.
func (r *Registry) Warm() error {
	r.mu.RLock()
	languages := slices.Clone(r.languages)
	r.mu.RUnlock()

	var errs []error
	for _, entry := range languages {
		if _, err := entry.build(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Languages lists the registered languages sorted by ID.
func (r *Registry) Languages() []lang.Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]lang.Info, 0, len(r.languages))
	for _, entry := range r.languages {
		infos = append(infos, entry.def.Info())
	}
	slices.SortFunc(infos, func(a, b lang.Info) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return infos
}

// Cache returns the pattern cache shared by this registry.
func (r *Registry) Cache() *pattern.Cache {
	return r.cache
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// defaultRegistry holds the built-in languages over a process-wide cache.
//
//nolint:gochecknoglobals // Built once on first use.
var defaultRegistry = sync.OnceValue(func() *Registry {
	reg, err := New(pattern.NewCache(), lang.MustBuiltin()...)
	if err != nil {
		panic(err)
	}
	return reg
})

// Default returns the process-wide registry of built-in languages.
func Default() *Registry {
	return defaultRegistry()
}

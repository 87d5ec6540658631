// Package markdown highlights the code blocks of a Markdown document,
// such as a chat message, using goldmark to find them.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gxhighlight/pkg/highlight"
	"github.com/yaklabco/gxhighlight/pkg/langdetect"
	"github.com/yaklabco/gxhighlight/pkg/registry"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

// Supported Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Block is one highlighted code block.
type Block struct {
	// Language is the resolved language ID, or "" when none was found.
	Language string `json:"language,omitempty"`

	// Info is the raw info string of a fenced block.
	Info string `json:"info,omitempty"`

	// Offset is the byte offset of the first code line in the document.
	Offset int `json:"offset"`

	// Fenced is false for indented code blocks.
	Fenced bool `json:"fenced"`

	// Code is the block content without fences or indentation.
	Code string `json:"code"`

	// Tokens cover Code. They are a single Normal token when not Highlighted.
	Tokens []token.Token `json:"tokens"`

	// Highlighted reports whether a language scanner produced Tokens.
	Highlighted bool `json:"highlighted"`

	// Lines holds the document byte range of each code line, in order.
	Lines []LineRange `json:"-"`
}

// LineRange is a half-open byte range [Start, Stop) of the document.
type LineRange struct {
	Start int
	Stop  int
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithFlavor selects the Markdown flavor. Unknown flavors fall back to
// CommonMark.
func WithFlavor(flavor string) Option {
	return func(h *Highlighter) {
		h.flavor = flavorOrDefault(flavor)
	}
}

// WithDetection enables or disables guessing the language of blocks whose
// info string names no known language. Detection is on by default.
func WithDetection(enabled bool) Option {
	return func(h *Highlighter) {
		h.detect = enabled
	}
}

// Highlighter finds and highlights code blocks.
type Highlighter struct {
	reg    *registry.Registry
	flavor string
	detect bool
	md     goldmark.Markdown
}

// New returns a Highlighter that scans through reg.
func New(reg *registry.Registry, opts ...Option) *Highlighter {
	h := &Highlighter{
		reg:    reg,
		flavor: FlavorCommonMark,
		detect: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.md = newGoldmarkInstance(h.flavor)
	return h
}

// Flavor returns the configured Markdown flavor.
func (h *Highlighter) Flavor() string {
	return h.flavor
}

// Highlight returns the code blocks of content in document order.
// Cancellation is checked between blocks.
func (h *Highlighter) Highlight(ctx context.Context, content []byte) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("highlight cancelled: %w", err)
	}

	doc := h.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var nodes []ast.Node
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			nodes = append(nodes, node)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}

	blocks := make([]Block, 0, len(nodes))
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("highlight cancelled: %w", err)
		}
		blocks = append(blocks, h.highlightBlock(node, content))
	}

	return blocks, nil
}

func (h *Highlighter) highlightBlock(node ast.Node, content []byte) Block {
	block := Block{Offset: -1}

	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		block.Fenced = true
		if fenced.Info != nil {
			block.Info = string(fenced.Info.Value(content))
		}
	}

	var code bytes.Buffer
	lines := node.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		if i == 0 {
			block.Offset = segment.Start
		}
		block.Lines = append(block.Lines, LineRange{Start: segment.Start, Stop: segment.Stop})
		code.Write(segment.Value(content))
	}
	block.Code = code.String()

	handle, ok := h.resolve(block.Info, block.Code)
	if !ok {
		block.Tokens = highlight.Plain(block.Code)
		return block
	}

	block.Language = handle.ID()
	block.Tokens = h.reg.Scan(handle, block.Code)
	block.Highlighted = true
	return block
}

// resolve picks the language from the info string, falling back to
// content detection.
func (h *Highlighter) resolve(info, code string) (registry.Handle, bool) {
	if name := InfoLanguage(info); name != "" {
		if handle, ok := h.reg.Resolve(name); ok {
			return handle, true
		}
	}

	if !h.detect {
		return registry.Handle{}, false
	}
	detected := langdetect.Detect([]byte(code))
	if detected == langdetect.Text {
		return registry.Handle{}, false
	}
	return h.reg.Resolve(detected)
}

// InfoLanguage extracts the language name from a fence info string: the
// first word, with pandoc-style braces and a leading dot removed.
func InfoLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "{")
	name = strings.TrimSuffix(name, "}")
	name = strings.TrimPrefix(name, ".")
	if i := strings.IndexAny(name, ",{"); i >= 0 {
		name = name[:i]
	}
	return name
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	if flavor == FlavorGFM {
		return goldmark.New(goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New()
}

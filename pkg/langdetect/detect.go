// Package langdetect guesses the language of unlabeled source text.
// It uses go-enry for shebangs, filenames and the classifier, plus a few
// cheap content heuristics, and answers with built-in language IDs.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language could be determined.
const Text = "text"

// Language IDs produced by the content heuristics.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langXML        = "xml"
	langPHP        = "php"
	langCSharp     = "csharp"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langCSV        = "csv"
	langTSV        = "tsv"
	langBash       = "bash"
)

// enryNames maps linguist language names to IDs where lower-casing the
// name is not enough.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]string{
	"Shell":             langBash,
	"C++":               "cpp",
	"C#":                langCSharp,
	"F#":                "fsharp",
	"Batchfile":         "batch",
	"Visual Basic .NET": "vbnet",
	"VBA":               "vbnet",
	"VBScript":          "vbnet",
	"TSX":               "typescript",
	"JSX":               langJavaScript,
	"Vue":               langHTML,
	"SCSS":              "css",
	"Less":              "css",
	"INI":               "ini",
	"Makefile":          "makefile",
	"Dockerfile":        langDockerfile,
	"Jupyter Notebook":  langJSON,
}

// classifierCandidates restricts the classifier to languages with tables.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile", "Kotlin",
	"Swift", "PHP", "Lua", "Perl", "R", "Haskell", "Scala",
}

// Detect returns the language ID for code content, or Text when detection
// fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// The classifier is only trusted when it settles on a single language.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Normalize(lang)
	}

	return Text
}

// DetectFile returns the language ID for a named file. The filename
// (extension or well-known name such as Makefile) is consulted first,
// then the content.
func DetectFile(filename string, content []byte) string {
	if lang := enry.GetLanguage(filename, content); lang != "" {
		return Normalize(lang)
	}
	return Detect(content)
}

// Normalize converts a go-enry language name to a language ID.
func Normalize(lang string) string {
	if id, ok := enryNames[lang]; ok {
		return id
	}
	return strings.ToLower(lang)
}

// detectByPattern checks for highly indicative content, most specific first.
func detectByPattern(content []byte) string {
	contentStr := string(content)
	trimmed := bytes.TrimSpace(content)

	detectors := []func() string{
		func() string { return detectGo(trimmed) },
		func() string { return detectMarkup(trimmed) },
		func() string { return detectCSharp(contentStr) },
		func() string { return detectPython(contentStr) },
		func() string { return detectJSON(trimmed) },
		func() string { return detectDockerfile(content, trimmed) },
		func() string { return detectSQL(contentStr) },
		func() string { return detectRust(contentStr) },
		func() string { return detectJavaScript(contentStr) },
		func() string { return detectDelimited(trimmed) },
		func() string { return detectYAML(content) },
	}
	for _, detect := range detectors {
		if lang := detect(); lang != "" {
			return lang
		}
	}
	return ""
}

func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) && !bytes.Contains(trimmed, []byte(";\n")) {
		return langGo
	}
	return ""
}

// detectMarkup recognizes PHP, XML and HTML documents.
func detectMarkup(trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	switch {
	case bytes.HasPrefix(lower, []byte("<?php")):
		return langPHP
	case bytes.HasPrefix(lower, []byte("<?xml")):
		return langXML
	case bytes.Contains(lower, []byte("<!doctype html")),
		bytes.Contains(lower, []byte("<html")),
		bytes.Contains(lower, []byte("<head>")),
		bytes.Contains(lower, []byte("<body>")):
		return langHTML
	}
	return ""
}

func detectCSharp(contentStr string) string {
	if strings.Contains(contentStr, "using System") && strings.Contains(contentStr, ";") {
		return langCSharp
	}
	if strings.Contains(contentStr, "namespace ") && strings.Contains(contentStr, "Console.Write") {
		return langCSharp
	}
	return ""
}

func detectPython(contentStr string) string {
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return langPython
	}
	// Go uses "import (", JavaScript uses "import x from 'y'".
	if strings.Contains(contentStr, "import ") && !strings.Contains(contentStr, "import (") &&
		!strings.Contains(contentStr, "';") && !strings.Contains(contentStr, "\";") {
		if strings.Contains(contentStr, "from ") || strings.HasPrefix(strings.TrimSpace(contentStr), "import ") {
			return langPython
		}
	}
	if strings.Contains(contentStr, "__name__") || strings.Contains(contentStr, "__main__") {
		return langPython
	}
	return ""
}

func detectJSON(trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func detectSQL(contentStr string) string {
	trimmedUpper := strings.ToUpper(strings.TrimSpace(contentStr))
	for _, prefix := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "WITH "} {
		if strings.HasPrefix(trimmedUpper, prefix) {
			return langSQL
		}
	}
	return ""
}

func detectRust(contentStr string) string {
	if strings.Contains(contentStr, "fn main()") ||
		strings.Contains(contentStr, "println!") ||
		strings.Contains(contentStr, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(contentStr string) string {
	if strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "const ") ||
		strings.Contains(contentStr, "let ") ||
		strings.Contains(contentStr, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectDelimited recognizes tabular text: at least two records that all
// carry the same non-zero number of commas (or tabs).
func detectDelimited(trimmed []byte) string {
	lines := bytes.Split(bytes.ReplaceAll(trimmed, []byte("\r\n"), []byte("\n")), []byte("\n"))
	if len(lines) < 2 {
		return ""
	}

	for _, candidate := range []struct {
		sep  string
		lang string
	}{{"\t", langTSV}, {",", langCSV}} {
		want := bytes.Count(lines[0], []byte(candidate.sep))
		if want == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if bytes.Count(line, []byte(candidate.sep)) != want {
				consistent = false
				break
			}
		}
		if consistent {
			return candidate.lang
		}
	}
	return ""
}

// detectYAML counts key: value pairs and list items.
func detectYAML(content []byte) string {
	yamlKeyCount := 0

	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		// Lines containing parentheses or braces look like code.
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			yamlKeyCount++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			yamlKeyCount++
		}
	}

	if yamlKeyCount >= 2 {
		return langYAML
	}
	return ""
}

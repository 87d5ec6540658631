package config

// Template is the commented starter configuration written by "gxhighlight init".
const Template = `# gxhighlight configuration
# See: https://github.com/yaklabco/gxhighlight

# When to emit ANSI colors: auto, always or never.
color: auto

# Default output format: ansi, text, json, html or summary.
format: ansi

# Markdown flavor for the markdown command: commonmark or gfm.
flavor: commonmark

# Parallel workers; 0 uses one per CPU.
jobs: 0

# Skip files larger than this many bytes; 0 disables the limit.
max_file_size: 0

# Directories holding extra language tables (*.yaml).
# language_dirs:
#   - ./highlight/languages

# Extra alias names resolved to language IDs.
# aliases:
#   jsonc: json
#   zsh: bash

# Per-kind terminal styles. Kinds: comment, string, number, keyword,
# type, method, operator, punctuation, normal.
# theme:
#   keyword:
#     foreground: "13"
#     bold: true
#   comment:
#     foreground: "#6a737d"
#     italic: true

# Glob patterns of files to skip when walking directories.
# ignore:
#   - vendor/**
`

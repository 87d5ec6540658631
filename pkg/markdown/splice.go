package markdown

import (
	"bytes"
	"strings"
)

// Splice returns content with the code of each block replaced by
// render(block). The rendered text must keep the block's line breaks: its
// i-th line replaces the i-th code line. Blocks whose rendering has a
// different number of lines are left untouched. Blocks must be in
// document order, as Highlight returns them.
func Splice(content []byte, blocks []Block, render func(Block) string) []byte {
	var out bytes.Buffer
	out.Grow(len(content))

	pos := 0
	for _, block := range blocks {
		if len(block.Lines) == 0 || block.Lines[0].Start < pos {
			continue
		}

		lines := strings.SplitAfter(render(block), "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		if len(lines) != len(block.Lines) {
			continue
		}

		for i, line := range block.Lines {
			out.Write(content[pos:line.Start])
			out.WriteString(lines[i])
			pos = line.Stop
		}
	}
	out.Write(content[pos:])

	return out.Bytes()
}

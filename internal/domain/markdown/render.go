package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberedPattern = regexp.MustCompile(`^(\d+)\. (.*)$`)
	emphasisPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

const boldDelimiter = "**"

// lineRule classifies a single line. It returns false when the line is not
// its kind, in which case the next rule is tried.
type lineRule func(line string) (Block, bool)

// rules are evaluated in order; the first match wins
var rules = []lineRule{
	heading2Rule,
	heading3Rule,
	boldLineRule,
	bulletRule,
	numberedRule,
	spacerRule,
}

// Render splits text on "\n" and classifies every line into a Block.
// The result has exactly one block per line.
func Render(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, RenderLine(line))
	}
	return blocks
}

// RenderLine classifies a single line
func RenderLine(line string) Block {
	for _, rule := range rules {
		if b, ok := rule(line); ok {
			return b
		}
	}
	return Block{Kind: KindParagraph, Runs: ParseInline(line)}
}

// Strip returns text with every marker the renderer understands removed,
// one output line per input line.
func Strip(text string) string {
	blocks := Render(text)
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.PlainText()
	}
	return strings.Join(lines, "\n")
}

func heading2Rule(line string) (Block, bool) {
	if rest, ok := strings.CutPrefix(line, "## "); ok {
		return Block{Kind: KindHeading2, Text: rest}, true
	}
	return Block{}, false
}

func heading3Rule(line string) (Block, bool) {
	if rest, ok := strings.CutPrefix(line, "### "); ok {
		return Block{Kind: KindHeading3, Text: rest}, true
	}
	return Block{}, false
}

func boldLineRule(line string) (Block, bool) {
	if len(line) < 2*len(boldDelimiter) ||
		!strings.HasPrefix(line, boldDelimiter) ||
		!strings.HasSuffix(line, boldDelimiter) {
		return Block{}, false
	}
	return Block{Kind: KindBoldLine, Text: strings.ReplaceAll(line, boldDelimiter, "")}, true
}

func bulletRule(line string) (Block, bool) {
	for _, prefix := range []string{"- ", "* "} {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return Block{Kind: KindBullet, Marker: BulletMarker, Runs: ParseInline(rest)}, true
		}
	}
	return Block{}, false
}

func numberedRule(line string) (Block, bool) {
	m := numberedPattern.FindStringSubmatch(line)
	if m == nil {
		return Block{}, false
	}
	// Index stays 0 when the number does not fit an int; Marker keeps the digits.
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		idx = 0
	}
	return Block{Kind: KindNumbered, Marker: m[1], Index: idx, Runs: ParseInline(m[2])}, true
}

func spacerRule(line string) (Block, bool) {
	if strings.TrimSpace(line) == "" {
		return Block{Kind: KindSpacer}, true
	}
	return Block{}, false
}

// ParseInline splits text into runs, emphasizing every paired "**...**"
// span. Pairs are matched left to right and non-greedily; a trailing
// unpaired "**" is kept as literal text. Empty runs are omitted.
func ParseInline(text string) []Run {
	var runs []Run
	appendRun := func(s string, emphasized bool) {
		if s != "" {
			runs = append(runs, Run{Text: s, Emphasized: emphasized})
		}
	}

	last := 0
	for _, loc := range emphasisPattern.FindAllStringSubmatchIndex(text, -1) {
		appendRun(text[last:loc[0]], false)
		appendRun(text[loc[2]:loc[3]], true)
		last = loc[1]
	}
	appendRun(text[last:], false)

	return runs
}

// Package markdown turns the oracle's markdown-like text into display blocks.
// Only the small subset the oracle actually produces is understood: two
// heading levels, whole-line bold, bullets, numbered items and inline bold.
package markdown

import "strings"

// Kind identifies how a line is displayed
type Kind string

const (
	KindHeading2  Kind = "heading2"
	KindHeading3  Kind = "heading3"
	KindBoldLine  Kind = "bold_line"
	KindBullet    Kind = "bullet"
	KindNumbered  Kind = "numbered"
	KindSpacer    Kind = "spacer"
	KindParagraph Kind = "paragraph"
)

// BulletMarker is shown in front of every bullet item
const BulletMarker = "•"

// Run is a span of inline text, optionally emphasized
type Run struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized,omitempty"`
}

// Block is one rendered line.
// Headings and bold lines carry Text; bullets, numbered items and
// paragraphs carry Runs. Spacers carry nothing.
type Block struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text,omitempty"`
	Marker string `json:"marker,omitempty"`
	Index  int    `json:"index,omitempty"`
	Runs   []Run  `json:"runs,omitempty"`
}

// PlainText returns the visible text of the block without markers
func (b Block) PlainText() string {
	switch b.Kind {
	case KindHeading2, KindHeading3, KindBoldLine:
		return b.Text
	case KindSpacer:
		return ""
	}

	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// HasEmphasis reports whether any run of the block is emphasized
func (b Block) HasEmphasis() bool {
	for _, r := range b.Runs {
		if r.Emphasized {
			return true
		}
	}
	return false
}

// Package terminal renders display blocks and alerts on a text console
package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chefaid/chefaid/internal/domain/markdown"
	domain "github.com/chefaid/chefaid/internal/domain/settings"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	apperrors "github.com/chefaid/chefaid/pkg/errors"
	"github.com/fatih/color"
)

// Printer writes blocks to out, styling each kind
type Printer struct {
	out io.Writer

	heading2 *color.Color
	heading3 *color.Color
	bold     *color.Color
	marker   *color.Color
	emphasis *color.Color
	muted    *color.Color
	alert    *color.Color
	notice   *color.Color
}

// NewPrinter creates a printer. Colors are disabled when noColor is set or
// out is not a terminal (fatih/color decides the latter globally).
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:      out,
		heading2: color.New(color.FgGreen, color.Bold, color.Underline),
		heading3: color.New(color.FgGreen, color.Bold),
		bold:     color.New(color.Bold),
		marker:   color.New(color.FgYellow),
		emphasis: color.New(color.Bold),
		muted:    color.New(color.FgHiBlack),
		alert:    color.New(color.FgRed, color.Bold),
		notice:   color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{p.heading2, p.heading3, p.bold, p.marker, p.emphasis, p.muted, p.alert, p.notice} {
			c.DisableColor()
		}
	}
	return p
}

// Blocks prints rendered lines in order
func (p *Printer) Blocks(blocks []markdown.Block) {
	for _, b := range blocks {
		p.block(b)
	}
}

func (p *Printer) block(b markdown.Block) {
	switch b.Kind {
	case markdown.KindHeading2:
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.heading2.Sprint(b.Text))
	case markdown.KindHeading3:
		fmt.Fprintln(p.out, p.heading3.Sprint(b.Text))
	case markdown.KindBoldLine:
		fmt.Fprintln(p.out, p.bold.Sprint(b.Text))
	case markdown.KindBullet:
		fmt.Fprintf(p.out, "  %s %s\n", p.marker.Sprint(markdown.BulletMarker), p.runs(b.Runs))
	case markdown.KindNumbered:
		fmt.Fprintf(p.out, "  %s %s\n", p.marker.Sprint(b.Marker+"."), p.runs(b.Runs))
	case markdown.KindSpacer:
		fmt.Fprintln(p.out)
	default:
		fmt.Fprintln(p.out, p.runs(b.Runs))
	}
}

func (p *Printer) runs(runs []markdown.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Emphasized {
			sb.WriteString(p.emphasis.Sprint(r.Text))
		} else {
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}

// Presentation prints the blocks followed by the share hints
func (p *Printer) Presentation(pres *inbound.Presentation) {
	p.Blocks(pres.Blocks)
	if pres.SMSLink != nil {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.muted.Sprint("Send shopping list: "+*pres.SMSLink))
	}
}

// Result prints an oracle result
func (p *Printer) Result(r *inbound.Result) {
	p.Presentation(&r.Presentation)
}

// Notice prints an informational alert
func (p *Printer) Notice(n inbound.Notice) {
	fmt.Fprintf(p.out, "%s %s\n", p.notice.Sprint(n.Title+":"), n.Message)
}

// Error prints err as an alert. Application errors show their title and
// message; anything else is shown as-is.
func (p *Printer) Error(err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		title := appErr.Title
		if title == "" {
			title = "Error"
		}
		message := appErr.Message
		if apperrors.GetCode(err) == apperrors.CodeValidationFailed && appErr.Details != "" {
			message = appErr.Details
		}
		fmt.Fprintf(p.out, "%s %s\n", p.alert.Sprint(title+":"), message)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.alert.Sprint("Error:"), err.Error())
}

// Settings prints the stored preferences with the key masked
func (p *Printer) Settings(s domain.Settings) {
	key := p.muted.Sprint("not set")
	if s.HasAPIKey() {
		key = s.MaskedAPIKey()
	}
	fmt.Fprintf(p.out, "%s %s\n", p.bold.Sprint("Gemini API key:"), key)
	fmt.Fprintf(p.out, "%s %d (%d-%d)\n", p.bold.Sprint("People:"), s.NumPeople, domain.MinNumPeople, domain.MaxNumPeople)
}

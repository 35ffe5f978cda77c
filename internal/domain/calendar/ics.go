// Package calendar converts a generated meal plan into an iCalendar document
// with one all-day event per planned day.
package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// FileName is the name the exported document is saved and shared under
	FileName = "meal_plan.ics"
	// MIMEType of the exported document
	MIMEType = "text/calendar"

	prodID          = "-//Chef Aid//Meal Plan//EN"
	summaryPrefix   = "Chef Aid: "
	labelSeparator  = " & "
	descriptionMax  = 400
	maxLineOctets   = 75
	crlf            = "\r\n"
	dateLayout      = "20060102"
	timestampLayout = "20060102T150405Z"
)

var dayPattern = regexp.MustCompile(`(?i)\*\*Day`)

// DayEvent is the calendar entry for one planned day
type DayEvent struct {
	DayIndex    int       `json:"day_index"`
	Date        time.Time `json:"date"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	UID         string    `json:"uid"`
}

// Segment splits text on "**Day" (any case) and returns one event per
// segment after the first. Day N is dated reference + N calendar days in
// the reference's location.
func Segment(text string, mealLabels []string, reference time.Time) []DayEvent {
	parts := dayPattern.Split(text, -1)
	if len(parts) <= 1 {
		return nil
	}

	summaryLabels := strings.Join(mealLabels, labelSeparator)
	base := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())

	events := make([]DayEvent, 0, len(parts)-1)
	for i, part := range parts[1:] {
		day := i + 1
		date := base.AddDate(0, 0, day)
		events = append(events, DayEvent{
			DayIndex:    day,
			Date:        date,
			Summary:     fmt.Sprintf("%s%s (Day %d)", summaryPrefix, summaryLabels, day),
			Description: sanitizeDescription(part),
			UID:         fmt.Sprintf("chefaid-day%d-%s@chefaid", day, date.Format(dateLayout)),
		})
	}
	return events
}

// Export renders the meal plan as a single VCALENDAR. Text without any day
// marker yields a calendar with no events.
func Export(text string, mealLabels []string, reference time.Time) string {
	return Encode(Segment(text, mealLabels, reference), reference)
}

// Encode serializes events, stamping each with the reference instant
func Encode(events []DayEvent, stamp time.Time) string {
	dtstamp := stamp.UTC().Format(timestampLayout)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
	}
	for _, ev := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+ev.UID,
			"DTSTAMP:"+dtstamp,
			"DTSTART;VALUE=DATE:"+ev.Date.Format(dateLayout),
			"DTEND;VALUE=DATE:"+ev.Date.AddDate(0, 0, 1).Format(dateLayout),
			"SUMMARY:"+ev.Summary,
			"DESCRIPTION:"+ev.Description,
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(fold(line))
		sb.WriteString(crlf)
	}
	return sb.String()
}

// sanitizeDescription keeps the first 400 characters, turns newlines into
// the two-character escape "\n" and replaces ',' and ';' with spaces.
// Carriage returns are dropped so CRLF input cannot break a content line.
func sanitizeDescription(s string) string {
	if utf8.RuneCountInString(s) > descriptionMax {
		s = string([]rune(s)[:descriptionMax])
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return strings.Map(func(r rune) rune {
		if r == ',' || r == ';' {
			return ' '
		}
		return r
	}, s)
}

// fold splits a content line into chunks of at most 75 octets, continuation
// lines starting with a single space. Multi-byte characters are never split.
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var sb strings.Builder
	limit := maxLineOctets
	width := 0
	for _, r := range line {
		size := utf8.RuneLen(r)
		if width+size > limit {
			sb.WriteString(crlf + " ")
			width = 0
			limit = maxLineOctets - 1
		}
		sb.WriteRune(r)
		width += size
	}
	return sb.String()
}

// Unfold reverses line folding and splits the document into content lines
func Unfold(doc string) []string {
	unfolded := strings.ReplaceAll(doc, crlf+" ", "")
	lines := strings.Split(strings.TrimSuffix(unfolded, crlf), crlf)
	return lines
}

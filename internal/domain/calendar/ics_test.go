package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CalendarTestSuite covers segmentation and ICS serialization
type CalendarTestSuite struct {
	suite.Suite
	reference time.Time
}

func (suite *CalendarTestSuite) SetupTest() {
	suite.reference = time.Date(2024, time.January, 1, 18, 30, 0, 0, time.UTC)
}

func (suite *CalendarTestSuite) TestSegment() {
	suite.Run("TwoDays_DatedAfterReference", func() {
		// Act
		events := Segment("prefix **Day one **Day two", []string{"Lunch"}, suite.reference)

		// Assert
		require.Len(suite.T(), events, 2)
		assert.Equal(suite.T(), 1, events[0].DayIndex)
		assert.Equal(suite.T(), "20240102", events[0].Date.Format(dateLayout))
		assert.Equal(suite.T(), "20240103", events[1].Date.Format(dateLayout))
		assert.Equal(suite.T(), "Chef Aid: Lunch (Day 1)", events[0].Summary)
		assert.Equal(suite.T(), "chefaid-day2-20240103@chefaid", events[1].UID)
		assert.Equal(suite.T(), " one ", events[0].Description)
		assert.Equal(suite.T(), " two", events[1].Description)
	})

	suite.Run("CaseInsensitiveMarker", func() {
		events := Segment("**DAY 1** eggs\n**day 2** toast", []string{"Breakfast"}, suite.reference)

		assert.Len(suite.T(), events, 2)
	})

	suite.Run("NoMarker_NoEvents", func() {
		assert.Empty(suite.T(), Segment("Day 1: pasta\nDay 2: salad", []string{"Dinner"}, suite.reference))
	})

	suite.Run("MarkerAtStart_EmptyPreambleDropped", func() {
		events := Segment("**Day 1** soup", []string{"Lunch"}, suite.reference)

		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), " 1** soup", events[0].Description)
	})

	suite.Run("LabelsJoinedWithAmpersand", func() {
		events := Segment("**Day 1**", []string{"Lunch", "Dinner"}, suite.reference)

		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), "Chef Aid: Lunch & Dinner (Day 1)", events[0].Summary)
	})

	suite.Run("CrossesMonthAndYear", func() {
		ref := time.Date(2024, time.December, 30, 9, 0, 0, 0, time.UTC)

		events := Segment("**Day a **Day b **Day c", []string{"Dinner"}, ref)

		require.Len(suite.T(), events, 3)
		assert.Equal(suite.T(), "20241231", events[0].Date.Format(dateLayout))
		assert.Equal(suite.T(), "20250101", events[1].Date.Format(dateLayout))
		assert.Equal(suite.T(), "20250102", events[2].Date.Format(dateLayout))
	})

	suite.Run("UsesReferenceLocation", func() {
		loc := time.FixedZone("UTC+13", 13*60*60)
		ref := time.Date(2024, time.March, 10, 23, 0, 0, 0, loc)

		events := Segment("**Day 1", []string{"Lunch"}, ref)

		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), "20240311", events[0].Date.Format(dateLayout))
	})
}

func (suite *CalendarTestSuite) TestDescriptionSanitizing() {
	suite.Run("EscapesNewlinesAndSeparators", func() {
		events := Segment("**Day 1**\nEggs, toast; coffee\r\nDone", []string{"Breakfast"}, suite.reference)

		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), ` 1**\nEggs  toast  coffee\nDone`, events[0].Description)
	})

	suite.Run("TruncatesTo400Characters", func() {
		body := strings.Repeat("é", 500)

		events := Segment("**Day"+body, []string{"Lunch"}, suite.reference)

		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), strings.Repeat("é", 400), events[0].Description)
	})

	suite.Run("TruncatesBeforeEscaping", func() {
		body := strings.Repeat("a", 399) + "\nbbb"

		events := Segment("**Day"+body, []string{"Lunch"}, suite.reference)

		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), strings.Repeat("a", 399)+`\n`, events[0].Description)
	})
}

func (suite *CalendarTestSuite) TestExport() {
	suite.Run("TwoDayPlan", func() {
		// Act
		doc := Export("prefix **Day one **Day two", []string{"Lunch"}, suite.reference)

		// Assert
		lines := Unfold(doc)
		assert.True(suite.T(), strings.HasSuffix(doc, "END:VCALENDAR\r\n"))
		assert.Equal(suite.T(), []string{
			"BEGIN:VCALENDAR",
			"VERSION:2.0",
			"PRODID:-//Chef Aid//Meal Plan//EN",
			"CALSCALE:GREGORIAN",
		}, lines[:4])
		assert.Equal(suite.T(), 2, strings.Count(doc, "BEGIN:VEVENT"))
		assert.Contains(suite.T(), lines, "DTSTART;VALUE=DATE:20240102")
		assert.Contains(suite.T(), lines, "DTEND;VALUE=DATE:20240103")
		assert.Contains(suite.T(), lines, "DTSTART;VALUE=DATE:20240103")
		assert.Contains(suite.T(), lines, "DTSTAMP:20240101T183000Z")
		assert.Contains(suite.T(), lines, "SUMMARY:Chef Aid: Lunch (Day 2)")
	})

	suite.Run("NoDays_EmptyCalendar", func() {
		doc := Export("Just a recipe", []string{"Lunch"}, suite.reference)

		assert.Equal(suite.T(),
			"BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//Chef Aid//Meal Plan//EN\r\nCALSCALE:GREGORIAN\r\nEND:VCALENDAR\r\n",
			doc)
	})

	suite.Run("LinesUseCRLF", func() {
		doc := Export("**Day 1", []string{"Lunch"}, suite.reference)

		assert.NotContains(suite.T(), strings.ReplaceAll(doc, "\r\n", ""), "\n")
	})
}

func (suite *CalendarTestSuite) TestFolding() {
	suite.Run("LongLinesFoldAt75Octets", func() {
		body := strings.Repeat("ü", 300)

		doc := Export("**Day"+body, []string{"Dinner"}, suite.reference)

		for _, physical := range strings.Split(strings.TrimSuffix(doc, "\r\n"), "\r\n") {
			assert.LessOrEqual(suite.T(), len(physical), 75)
		}
		assert.Contains(suite.T(), Unfold(doc), "DESCRIPTION:"+strings.Repeat("ü", 300))
	})

	suite.Run("ShortLineUnchanged", func() {
		assert.Equal(suite.T(), "VERSION:2.0", fold("VERSION:2.0"))
	})
}

func TestCalendarTestSuite(t *testing.T) {
	suite.Run(t, new(CalendarTestSuite))
}

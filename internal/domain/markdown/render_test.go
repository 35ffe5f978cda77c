package markdown

import (
	"strings"
	"testing"

	"github.com/chefaid/chefaid/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RenderTestSuite covers line classification and inline emphasis
type RenderTestSuite struct {
	suite.Suite
}

func (suite *RenderTestSuite) TestLineClassification() {
	suite.Run("Heading2_StripsPrefix", func() {
		// Act
		block := RenderLine("## Day Plan")

		// Assert
		assert.Equal(suite.T(), Block{Kind: KindHeading2, Text: "Day Plan"}, block)
	})

	suite.Run("Heading3_StripsPrefix", func() {
		block := RenderLine("### Ingredients")

		assert.Equal(suite.T(), Block{Kind: KindHeading3, Text: "Ingredients"}, block)
	})

	suite.Run("Heading2_TakesPrecedenceOverBold", func() {
		block := RenderLine("## **Bold heading**")

		assert.Equal(suite.T(), KindHeading2, block.Kind)
		assert.Equal(suite.T(), "**Bold heading**", block.Text)
	})

	suite.Run("HashWithoutSpace_IsParagraph", func() {
		block := RenderLine("##NoSpace")

		assert.Equal(suite.T(), KindParagraph, block.Kind)
		assert.Equal(suite.T(), "##NoSpace", block.PlainText())
	})

	suite.Run("BoldLine_RemovesAllDelimiters", func() {
		block := RenderLine("**Total: $20**")

		assert.Equal(suite.T(), Block{Kind: KindBoldLine, Text: "Total: $20"}, block)
	})

	suite.Run("BoldLine_InnerDelimitersRemoved", func() {
		block := RenderLine("**Day 1** and **Day 2**")

		assert.Equal(suite.T(), KindBoldLine, block.Kind)
		assert.Equal(suite.T(), "Day 1 and Day 2", block.Text)
	})

	suite.Run("BoldLine_MinimumLength", func() {
		assert.Equal(suite.T(), KindBoldLine, RenderLine("****").Kind)
		assert.Equal(suite.T(), "", RenderLine("****").Text)

		short := RenderLine("***")
		assert.Equal(suite.T(), KindParagraph, short.Kind)
		assert.Equal(suite.T(), "***", short.PlainText())
	})

	suite.Run("DashBullet", func() {
		block := RenderLine("- 2 cups flour")

		assert.Equal(suite.T(), KindBullet, block.Kind)
		assert.Equal(suite.T(), BulletMarker, block.Marker)
		assert.Equal(suite.T(), []Run{{Text: "2 cups flour"}}, block.Runs)
	})

	suite.Run("StarBullet_WithEmphasis", func() {
		block := RenderLine("* **Eggs**: 4 large")

		assert.Equal(suite.T(), KindBullet, block.Kind)
		assert.Equal(suite.T(), []Run{
			{Text: "Eggs", Emphasized: true},
			{Text: ": 4 large"},
		}, block.Runs)
	})

	suite.Run("Numbered_CapturesIndex", func() {
		block := RenderLine("3. Boil water")

		assert.Equal(suite.T(), KindNumbered, block.Kind)
		assert.Equal(suite.T(), 3, block.Index)
		assert.Equal(suite.T(), "3", block.Marker)
		assert.Equal(suite.T(), "Boil water", block.PlainText())
	})

	suite.Run("Numbered_RequiresSpaceAfterDot", func() {
		block := RenderLine("3.5 cups rice")

		assert.Equal(suite.T(), KindParagraph, block.Kind)
	})

	suite.Run("Numbered_IndentedIsParagraph", func() {
		block := RenderLine("  1. indented")

		assert.Equal(suite.T(), KindParagraph, block.Kind)
		assert.Equal(suite.T(), "  1. indented", block.PlainText())
	})

	suite.Run("Numbered_OverflowKeepsDigitsAsMarker", func() {
		block := RenderLine("99999999999999999999999. Huge")

		assert.Equal(suite.T(), KindNumbered, block.Kind)
		assert.Equal(suite.T(), "99999999999999999999999", block.Marker)
		assert.Equal(suite.T(), 0, block.Index)
		assert.Equal(suite.T(), "Huge", block.PlainText())
	})

	suite.Run("EmptyAndWhitespace_AreSpacers", func() {
		assert.Equal(suite.T(), Block{Kind: KindSpacer}, RenderLine(""))
		assert.Equal(suite.T(), Block{Kind: KindSpacer}, RenderLine("   \t"))
	})

	suite.Run("Paragraph_WithInlineEmphasis", func() {
		block := RenderLine("Serve with **fresh basil** and enjoy")

		assert.Equal(suite.T(), KindParagraph, block.Kind)
		assert.Equal(suite.T(), []Run{
			{Text: "Serve with "},
			{Text: "fresh basil", Emphasized: true},
			{Text: " and enjoy"},
		}, block.Runs)
		assert.True(suite.T(), block.HasEmphasis())
	})
}

func (suite *RenderTestSuite) TestParseInline() {
	suite.Run("UnpairedDelimiter_StaysLiteral", func() {
		runs := ParseInline("a **b** c **d")

		assert.Equal(suite.T(), []Run{
			{Text: "a "},
			{Text: "b", Emphasized: true},
			{Text: " c **d"},
		}, runs)
	})

	suite.Run("PairsMatchNonGreedily", func() {
		runs := ParseInline("**x** and **y**")

		assert.Equal(suite.T(), []Run{
			{Text: "x", Emphasized: true},
			{Text: " and "},
			{Text: "y", Emphasized: true},
		}, runs)
	})

	suite.Run("EmptyEmphasis_IsDropped", func() {
		runs := ParseInline("a****b")

		assert.Equal(suite.T(), []Run{{Text: "a"}, {Text: "b"}}, runs)
	})

	suite.Run("EmptyText_NoRuns", func() {
		assert.Empty(suite.T(), ParseInline(""))
	})
}

func (suite *RenderTestSuite) TestRenderDocument() {
	// Arrange
	text := strings.Join([]string{
		"## Lemon Pasta",
		"A bright weeknight dish.",
		"",
		"### Ingredients",
		"- 200g spaghetti",
		"- 1 **lemon**",
		"1. Boil the pasta",
		"2. Toss with lemon",
		"**SHOPPING LIST**",
	}, "\n")

	// Act
	blocks := Render(text)

	// Assert
	require.Len(suite.T(), blocks, 9)
	kinds := make([]Kind, len(blocks))
	for i, b := range blocks {
		kinds[i] = b.Kind
	}
	assert.Equal(suite.T(), []Kind{
		KindHeading2, KindParagraph, KindSpacer, KindHeading3,
		KindBullet, KindBullet, KindNumbered, KindNumbered, KindBoldLine,
	}, kinds)
	assert.Equal(suite.T(), 2, blocks[7].Index)
}

func (suite *RenderTestSuite) TestStrip() {
	suite.Run("RemovesMarkersLineByLine", func() {
		text := "## Title\n- **Salt** to taste\n3. Stir **well**\n**Done**\n\nplain"

		assert.Equal(suite.T(), "Title\nSalt to taste\nStir well\nDone\n\nplain", Strip(text))
	})

	suite.Run("EmptyInput_SingleSpacer", func() {
		blocks := Render("")

		require.Len(suite.T(), blocks, 1)
		assert.Equal(suite.T(), KindSpacer, blocks[0].Kind)
		assert.Equal(suite.T(), "", Strip(""))
	})
}

func (suite *RenderTestSuite) TestLineLocality() {
	suite.Run("BulletDoesNotContinueOnNextLine", func() {
		blocks := Render("- item\n  continued")

		require.Len(suite.T(), blocks, 2)
		assert.Equal(suite.T(), KindBullet, blocks[0].Kind)
		assert.Equal(suite.T(), "item", blocks[0].PlainText())
		assert.Equal(suite.T(), KindParagraph, blocks[1].Kind)
		assert.Equal(suite.T(), "  continued", blocks[1].PlainText())
	})

	suite.Run("EmphasisDoesNotPairAcrossLines", func() {
		blocks := Render("a **b\nc** d")

		require.Len(suite.T(), blocks, 2)
		assert.Equal(suite.T(), []Run{{Text: "a **b"}}, blocks[0].Runs)
		assert.Equal(suite.T(), []Run{{Text: "c** d"}}, blocks[1].Runs)
		for _, b := range blocks {
			assert.Equal(suite.T(), KindParagraph, b.Kind)
		}
	})
}

func (suite *RenderTestSuite) TestBuiltDocuments() {
	suite.Run("OneBlockPerLine", func() {
		text := testutils.NewDocumentBuilder(nil).
			Heading("Pasta Night").
			Subheading("Ingredients").
			Bullets("pasta", "basil").
			Blank().
			Steps("Boil water", "Cook pasta").
			Build()

		blocks := Render(text)

		require.Len(suite.T(), blocks, 7)
		assert.Equal(suite.T(), KindHeading3, blocks[1].Kind)
		assert.Equal(suite.T(), KindSpacer, blocks[4].Kind)
		assert.Equal(suite.T(), "2", blocks[6].Marker)
	})

	suite.Run("GeneratedRecipesKeepLineCount", func() {
		factory := testutils.NewMarkdownFactory(42)
		for i := 0; i < 5; i++ {
			text := factory.Recipe()

			blocks := Render(text)

			assert.Len(suite.T(), blocks, strings.Count(text, "\n")+1)
			assert.NotContains(suite.T(), Strip(text), "**")
		}
	})
}

func TestRenderTestSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

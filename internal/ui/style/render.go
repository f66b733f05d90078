package style

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/bonding-curve/internal/curve"
	"github.com/rovshanmuradov/bonding-curve/internal/fixedpoint"
	"github.com/rovshanmuradov/bonding-curve/internal/quote"
)

// TokenDecimals is the number of decimals of the launched token.
const TokenDecimals = 6

var palette = DefaultPalette()

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted)
)

// FormatSOL renders lamports as SOL.
func FormatSOL(lamports uint64) string {
	return shift(lamports, decimal.NewFromBigInt(new(big.Int).SetUint64(solana.LAMPORTS_PER_SOL), 0)) + " SOL"
}

// FormatTokens renders base units of the launched token.
func FormatTokens(units uint64) string {
	return shift(units, decimal.New(1, TokenDecimals)) + " tokens"
}

func shift(amount uint64, unit decimal.Decimal) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0).Div(unit).String()
}

// formatAmount renders an amount of A (tokens) or B (SOL).
func formatAmount(amount uint64, isA bool) string {
	if isA {
		return FormatTokens(amount)
	}
	return FormatSOL(amount)
}

// RenderPrice renders the price line.
func RenderPrice(kind curve.Kind, price fixedpoint.Number) string {
	return TitleStyle.Render(fmt.Sprintf("%s curve", kind)) + " " +
		fmt.Sprintf("price %s", price) + " " +
		MutedStyle.Render(fmt.Sprintf("(raw %s, scale %d)", price.Raw(), price.Scale()))
}

// RenderQuotes renders quotes as a table.
func RenderQuotes(quotes []*quote.Quote) string {
	headers := []string{"Direction", "In", "Out", "Min out"}

	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		if q == nil {
			continue
		}
		inIsA := q.Direction == curve.AtoB
		rows = append(rows, []string{
			q.Direction.String(),
			formatAmount(q.AmountIn, inIsA),
			formatAmount(q.AmountOut, !inIsA),
			formatAmount(q.MinAmountOut, !inIsA),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var content strings.Builder

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = headerStyle.Width(widths[i] + 2).Render(h)
	}
	content.WriteString(strings.Join(cells, "│"))
	content.WriteString("\n")

	separator := make([]string, len(headers))
	for i, w := range widths {
		separator[i] = strings.Repeat("─", w+2)
	}
	content.WriteString(strings.Join(separator, "┼"))

	for _, row := range rows {
		content.WriteString("\n")

		style := rowStyle.Foreground(palette.BtoA)
		if row[0] == curve.AtoB.String() {
			style = rowStyle.Foreground(palette.AtoB)
		}

		for i, cell := range row {
			align := lipgloss.Right
			if i == 0 {
				align = lipgloss.Left
			}
			cells[i] = style.Width(widths[i] + 2).Align(align).Render(cell)
		}
		content.WriteString(strings.Join(cells, "│"))
	}

	return borderStyle.Render(content.String())
}

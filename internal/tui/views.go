package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gachaledger/internal/cli"
	"gachaledger/internal/recap"
)

var (
	slideTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor).
			Padding(0, 1)

	bigNumberStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.WarningColor).
			Padding(1, 2)

	premiumStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.WarningColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor)
)

// View renders the current slide inside the slideshow frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	slide := m.recap.Slides[m.index]
	header := slideTitleStyle.Render(slide.Title)
	footer := footerStyle.Render(fmt.Sprintf(
		"%d/%d  →/space next · ← prev · s save receipt · q quit",
		m.index+1, len(m.recap.Slides)))
	if m.savedPath != "" {
		footer += "  " + cli.SuccessStyle.Render("saved "+m.savedPath)
	}
	if m.saveErr != nil {
		footer += "  " + cli.ErrorStyle.Render(m.saveErr.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		footer,
	)
}

// renderSlideBody produces the scrollable body of one slide.
func (m Model) renderSlideBody(slide recap.Slide) string {
	r := m.recap
	switch slide.Kind {
	case recap.KindIntro:
		return lipgloss.JoinVertical(lipgloss.Center,
			"",
			cli.BoldStyle.Render(fmt.Sprintf("%d년 %s", r.Year, r.App)),
			"",
			cli.SubtleStyle.Render("올 한 해 지갑의 기록을 돌아봅니다."),
		)

	case recap.KindTotal:
		return lipgloss.JoinVertical(lipgloss.Center,
			"올해 바친 금액",
			bigNumberStyle.Render(cli.FormatMoney(r.Total, r.Currency)),
		)

	case recap.KindDailyReceipt:
		var b strings.Builder
		for _, key := range []string{"데일리 왕사탕", "데일리 별사탕", "데일리 엘리프"} {
			stat := r.Daily[key]
			if stat.Count == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s  x%d  %s\n", key, stat.Count, cli.FormatMoney(stat.Sum, r.Currency))
		}
		return cli.BoxStyle.Render(strings.TrimRight(b.String(), "\n"))

	case recap.KindPassReceipt:
		var b strings.Builder
		for month := 1; month <= 12; month++ {
			stat, ok := r.PassMonthly[month]
			if !ok || stat.Count == 0 {
				continue
			}
			line := fmt.Sprintf("%2d월  x%d  %s", month, stat.Count, cli.FormatMoney(stat.Sum, r.Currency))
			if stat.Premium() {
				line += "  " + premiumStyle.Render("★ PREMIUM")
			}
			b.WriteString(line + "\n")
		}
		return cli.BoxStyle.Render(strings.TrimRight(b.String(), "\n"))

	case recap.KindCosmeticGallery:
		var b strings.Builder
		for _, item := range r.Cosmetics {
			fmt.Fprintf(&b, "%s  %s\n", item.Date.Format("01/02"), item.Title)
		}
		return strings.TrimRight(b.String(), "\n")

	case recap.KindCosmeticReceipt:
		var b strings.Builder
		total := 0.0
		for month := 1; month <= 12; month++ {
			for _, item := range r.CosmeticMonthly[month] {
				fmt.Fprintf(&b, "%2d월  %s  %s\n", month, item.Title, cli.FormatMoney(item.Price, r.Currency))
				total += item.Price
			}
		}
		fmt.Fprintf(&b, "합계  %s", cli.FormatMoney(total, r.Currency))
		return cli.BoxStyle.Render(b.String())

	case recap.KindMonthlyTimeline:
		var b strings.Builder
		for _, month := range r.Months() {
			fmt.Fprintf(&b, "- %d월 (%s) -\n", month, cli.FormatMoney(r.MonthlySpent[month], r.Currency))
			for _, item := range r.Timeline[month] {
				fmt.Fprintf(&b, "  %s  %s\n", item.Name, cli.FormatMoney(item.Price, r.Currency))
			}
		}
		return strings.TrimRight(b.String(), "\n")

	case recap.KindMaxMonthReceipt:
		var b strings.Builder
		fmt.Fprintf(&b, "%d월에 %s을 썼습니다.\n\n", r.MaxMonth, cli.FormatMoney(r.MaxMonthAmount, r.Currency))
		for _, item := range r.MaxMonthItems() {
			fmt.Fprintf(&b, "  %s  %s\n", item.Name, cli.FormatMoney(item.Price, r.Currency))
		}
		return cli.BoxStyle.Render(strings.TrimRight(b.String(), "\n"))

	case recap.KindOutro:
		return lipgloss.JoinVertical(lipgloss.Center,
			"",
			cli.BoldStyle.Render("감사합니다!"),
			"",
			cli.SubtleStyle.Render("s 키로 전체 영수증을 텍스트 파일로 저장할 수 있습니다."),
		)

	default:
		return ""
	}
}

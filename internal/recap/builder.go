// Package recap turns one year of a single app's ledger into the
// narrative slide sequence of the year-end recap. It produces plain data
// only; the TUI decides how each slide looks.
package recap

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gachaledger/internal/common"
	"gachaledger/internal/model"
)

// Kind identifies a slide type.
type Kind string

// Slide kinds, in presentation order.
const (
	KindIntro           Kind = "intro"
	KindTotal           Kind = "total"
	KindDailyReceipt    Kind = "daily_receipt"
	KindPassReceipt     Kind = "pass_receipt"
	KindCosmeticGallery Kind = "cosmetic_gallery"
	KindCosmeticReceipt Kind = "cosmetic_receipt"
	KindMonthlyTimeline Kind = "monthly_timeline"
	KindMaxMonthReceipt Kind = "max_month_receipt"
	KindOutro           Kind = "outro"
)

// Slide is one step of the recap. Its payload lives on the Recap; the
// kind tells the renderer which fields to read.
type Slide struct {
	Kind  Kind
	Title string
}

// Stat is a purchase count plus amount sum.
type Stat struct {
	Sum   float64
	Count int
}

// Premium reports whether a month's pass purchases count as the premium
// tier: bought at least twice, or more than 12000 spent.
func (s Stat) Premium() bool {
	return s.Count >= 2 || s.Sum > 12000
}

// TimelineItem is one purchase as shown on the monthly timeline, with
// the display title already cleaned and truncated.
type TimelineItem struct {
	Name  string
	Price float64
}

// Recap is the computed year summary behind the slides.
type Recap struct {
	Daily           map[string]Stat
	PassMonthly     map[int]Stat
	CosmeticMonthly map[int][]model.Transaction
	Timeline        map[int][]TimelineItem
	MonthlySpent    map[int]float64
	App             string
	Currency        model.Currency
	Cosmetics       []model.Transaction
	Slides          []Slide
	Total           float64
	MaxMonthAmount  float64
	Year            int
	MaxMonth        int
}

// Daily bundle categories and their short forms. A title matches a
// category when it contains either the full key or the short form.
var dailyKeys = []string{"데일리 왕사탕", "데일리 별사탕", "데일리 엘리프"}

const dailyPrefix = "데일리 "

// displayTitleLimit caps timeline titles, in runes.
const displayTitleLimit = 18

// cosmeticAliases folds the cosmetic pass's naming drift into one label.
var cosmeticAliases = map[string]string{
	"사복 패스":    "에르핀 사복 패스",
	"사복패스":     "에르핀 사복 패스",
	"2월 사복 패스": "에르핀 사복 패스",
}

// CleanTitle strips the parenthetical app suffix some exports append to
// a line item and normalizes known alias titles.
func CleanTitle(title, app string) string {
	suffix := regexp.MustCompile(`\s*\(\s*` + regexp.QuoteMeta(app))
	cleaned := strings.TrimSpace(suffix.Split(title, 2)[0])
	if alias, ok := cosmeticAliases[cleaned]; ok {
		return alias
	}
	return cleaned
}

// Build computes the recap for one app's ledger restricted to a year and
// currency. It returns ErrNoTransactions when the year holds nothing.
func Build(app string, year int, currency model.Currency, ledger []model.Transaction) (*Recap, error) {
	var yearData []model.Transaction
	for _, txn := range ledger {
		if txn.Date.Year() == year && txn.Currency == currency {
			yearData = append(yearData, txn)
		}
	}
	sort.SliceStable(yearData, func(i, j int) bool {
		return yearData[i].Date.Before(yearData[j].Date)
	})

	if len(yearData) == 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("No %s purchases found in %d.", app, year),
			common.ErrNoTransactions,
		)
	}

	r := &Recap{
		App:             app,
		Year:            year,
		Currency:        currency,
		Daily:           make(map[string]Stat, len(dailyKeys)),
		PassMonthly:     make(map[int]Stat),
		CosmeticMonthly: make(map[int][]model.Transaction),
		Timeline:        make(map[int][]TimelineItem),
		MonthlySpent:    make(map[int]float64),
	}
	for _, key := range dailyKeys {
		r.Daily[key] = Stat{}
	}

	for _, txn := range yearData {
		month := int(txn.Date.Month())
		cleaned := CleanTitle(txn.Title, app)
		r.Total += txn.Price

		isDaily := false
		for _, key := range dailyKeys {
			short := strings.TrimPrefix(key, dailyPrefix)
			if strings.Contains(cleaned, key) || strings.Contains(cleaned, short) {
				stat := r.Daily[key]
				stat.Count++
				stat.Sum += txn.Price
				r.Daily[key] = stat
				isDaily = true
			}
		}

		if !isDaily {
			switch {
			case strings.Contains(cleaned, "트릭컬 패스") || strings.Contains(cleaned, "리바이브 패스"):
				stat := r.PassMonthly[month]
				stat.Count++
				stat.Sum += txn.Price
				r.PassMonthly[month] = stat
			case strings.Contains(cleaned, "사복 패스") || strings.Contains(cleaned, "사복패스"):
				item := txn
				item.Title = cleaned
				r.Cosmetics = append(r.Cosmetics, item)
				r.CosmeticMonthly[month] = append(r.CosmeticMonthly[month], item)
			}
		}

		r.MonthlySpent[month] += txn.Price
		r.Timeline[month] = append(r.Timeline[month], TimelineItem{
			Name:  truncateTitle(cleaned),
			Price: txn.Price,
		})
	}

	// Ascending month scan with a strict comparison keeps the earliest
	// month on equal totals.
	for month := 1; month <= 12; month++ {
		if amt, ok := r.MonthlySpent[month]; ok && amt > r.MaxMonthAmount {
			r.MaxMonthAmount = amt
			r.MaxMonth = month
		}
	}

	r.Slides = r.buildSlides()
	return r, nil
}

// buildSlides assembles the slide order, skipping the optional slides
// whose data is empty.
func (r *Recap) buildSlides() []Slide {
	slides := []Slide{
		{Kind: KindIntro, Title: fmt.Sprintf("%d년 %s", r.Year, r.App)},
		{Kind: KindTotal, Title: "올해 바친 금액"},
	}

	hasDaily := false
	for _, stat := range r.Daily {
		if stat.Count > 0 {
			hasDaily = true
			break
		}
	}
	if hasDaily {
		slides = append(slides, Slide{Kind: KindDailyReceipt, Title: "데일리 공물 영수증"})
	}

	for _, stat := range r.PassMonthly {
		if stat.Count > 0 {
			slides = append(slides, Slide{Kind: KindPassReceipt, Title: "월간 패스 기록"})
			break
		}
	}

	if len(r.Cosmetics) > 0 {
		slides = append(slides,
			Slide{Kind: KindCosmeticGallery, Title: "사복 컬렉션"},
			Slide{Kind: KindCosmeticReceipt, Title: "사복 패스 영수증"},
		)
	}

	slides = append(slides,
		Slide{Kind: KindMonthlyTimeline, Title: "월별 공물 납부 내역"},
		Slide{Kind: KindMaxMonthReceipt, Title: fmt.Sprintf("가장 지갑이 얇아졌던 달: %d월", r.MaxMonth)},
		Slide{Kind: KindOutro, Title: "감사합니다!"},
	)
	return slides
}

// MaxMonthItems returns the timeline entries of the biggest month.
func (r *Recap) MaxMonthItems() []TimelineItem {
	return r.Timeline[r.MaxMonth]
}

// Months returns the months that saw spending, ascending.
func (r *Recap) Months() []int {
	months := make([]int, 0, len(r.MonthlySpent))
	for m := range r.MonthlySpent {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= displayTitleLimit {
		return title
	}
	return string(runes[:displayTitleLimit]) + ".."
}

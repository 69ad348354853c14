package valueprop

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/quiz"
)

// Kind tags a value proposition entry.
type Kind string

const (
	KindTime       Kind = "time"
	KindEfficiency Kind = "efficiency"
	KindROI        Kind = "roi"
)

// Proposition is one estimated benefit shown next to a recommendation.
type Proposition struct {
	Type        Kind   `json:"type"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

const (
	hoursPerLawyerFromScratch = 5
	hoursPerLawyerSwitching   = 2
	aiBonusHoursPerLawyer     = 3
	fallbackEfficiencyPercent = "25"
)

// Products already in the portfolio; users of these get no estimate.
var ownedProducts = map[string]bool{
	"lexolution": true,
	"advoware":   true,
	"winmacs":    true,
	"amberlo":    true,
	"winjur":     true,
}

// Products that ship integrated AI features.
var aiProducts = map[string]bool{
	"amberlo":  true,
	"advoware": true,
}

// Calculate estimates time and money saved by switching to top. Entries are
// ordered time before roi. Locale only affects text and number grouping.
func Calculate(answers quiz.Answers, top catalog.Product, locale catalog.Locale) []Proposition {
	t := messagesFor(locale)
	software := answers.String(quiz.QuestionCurrentSoftware)

	if ownedProducts[software] {
		return []Proposition{{
			Type:        KindEfficiency,
			Title:       t.OptimalSoftware.Title,
			Value:       t.OptimalSoftware.Value,
			Unit:        t.OptimalSoftware.Unit,
			Description: t.OptimalSoftware.Description,
		}}
	}

	lawyers, ok := answers.Int(quiz.QuestionLawyerCount)
	if !ok || lawyers <= 0 {
		return []Proposition{{
			Type:        KindEfficiency,
			Title:       t.EfficiencyGain.Title,
			Value:       fallbackEfficiencyPercent,
			Unit:        "%",
			Description: t.EfficiencyGain.Description,
		}}
	}

	perLawyer := float64(hoursPerLawyerSwitching)
	if software == "none" {
		perLawyer = hoursPerLawyerFromScratch
	}
	// Float math keeps very large firm sizes from wrapping around.
	hours := float64(lawyers) * perLawyer
	description := t.TimeBase
	if aiProducts[top.ID] && answers.IsNo(quiz.AIReadinessQuestion) {
		hours += float64(lawyers) * aiBonusHoursPerLawyer
		description = t.TimeAI
	}

	out := []Proposition{{
		Type:        KindTime,
		Title:       t.TimeTitle,
		Value:       strconv.FormatFloat(math.Round(hours), 'f', 0, 64),
		Unit:        t.TimeUnit,
		Description: description,
	}}

	rate, ok := answers.Int(quiz.QuestionAverageHourlyRate)
	if ok && rate > 0 && hours > 0 {
		out = append(out, Proposition{
			Type:        KindROI,
			Title:       t.Monetary.Title,
			Value:       FormatAmount(math.Round(hours*float64(rate)), locale),
			Unit:        t.Monetary.Unit,
			Description: t.Monetary.Description,
		})
	}
	return out
}

// FormatAmount groups digits the way the locale writes whole numbers,
// e.g. 4.000 for de and 4,000 for en. Fractions are rounded away.
func FormatAmount(amount float64, locale catalog.Locale) string {
	tag := language.German
	if locale == catalog.LocaleEN {
		tag = language.AmericanEnglish
	}
	return message.NewPrinter(tag).Sprintf("%.0f", amount)
}

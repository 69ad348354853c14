package quiz

import "productfinder-backend/internal/catalog"

// MaturityLevel is one stage on the digital maturity scale.
type MaturityLevel struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Stage int    `json:"stage"`
	Title string `json:"title"`
}

// Maturity summarizes how digitalized a firm is.
type Maturity struct {
	Points    int    `json:"points"`
	MaxPoints int    `json:"maxPoints"`
	Stage     int    `json:"stage"`
	Stages    int    `json:"stages"`
	Title     string `json:"title"`
}

var maturityTitles = map[catalog.Locale][]string{
	catalog.LocaleDE: {
		"Analoger Start",
		"Erste Schritte",
		"Digitale Grundlagen",
		"Im Aufbruch",
		"Digital unterwegs",
		"Fortgeschritten",
		"Digitaler Vorreiter",
		"Digitale Kanzlei",
	},
	catalog.LocaleEN: {
		"Analog start",
		"First steps",
		"Digital foundations",
		"Getting started",
		"Digital on the move",
		"Advanced",
		"Digital pioneer",
		"Digital firm",
	},
}

// MaturityLevels returns the eight maturity stages for a locale.
func MaturityLevels(locale catalog.Locale) []MaturityLevel {
	titles, ok := maturityTitles[locale]
	if !ok {
		titles = maturityTitles[catalog.LocaleDE]
	}
	levels := make([]MaturityLevel, len(titles))
	for i, title := range titles {
		levels[i] = MaturityLevel{Min: i * 2, Max: i*2 + 1, Stage: i + 1, Title: title}
	}
	return levels
}

// AssessMaturity counts "Yes" maturity answers and maps them to a stage.
func AssessMaturity(answers Answers, locale catalog.Locale) Maturity {
	points := 0
	for _, id := range maturityQuestions {
		if answers.IsYes(id) {
			points++
		}
	}
	levels := MaturityLevels(locale)
	level := levels[0]
	for _, l := range levels {
		if points >= l.Min && points <= l.Max {
			level = l
			break
		}
	}
	return Maturity{
		Points:    points,
		MaxPoints: len(maturityQuestions),
		Stage:     level.Stage,
		Stages:    len(levels),
		Title:     level.Title,
	}
}

package valueprop

import "productfinder-backend/internal/catalog"

type entryText struct {
	Title       string
	Value       string
	Unit        string
	Description string
}

type messages struct {
	OptimalSoftware entryText
	EfficiencyGain  entryText
	TimeTitle       string
	TimeUnit        string
	TimeBase        string
	TimeAI          string
	Monetary        entryText
}

var localeMessages = map[catalog.Locale]messages{
	catalog.LocaleDE: {
		OptimalSoftware: entryText{
			Title:       "Bereits optimal aufgestellt",
			Value:       "100",
			Unit:        "%",
			Description: "Sie nutzen bereits eine Lösung aus unserem Portfolio. Gerne zeigen wir Ihnen, wie Sie noch mehr herausholen.",
		},
		EfficiencyGain: entryText{
			Title:       "Effizienzsteigerung",
			Unit:        "%",
			Description: "Kanzleien steigern ihre Effizienz mit moderner Kanzleisoftware typischerweise um rund ein Viertel.",
		},
		TimeTitle: "Zeitersparnis pro Monat",
		TimeUnit:  "Stunden",
		TimeBase:  "Geschätzte Zeitersparnis durch automatisierte Abläufe und zentrale Aktenführung.",
		TimeAI:    "Geschätzte Zeitersparnis durch automatisierte Abläufe, zentrale Aktenführung und integrierte KI-Funktionen.",
		Monetary: entryText{
			Title:       "Monetärer Gegenwert pro Monat",
			Unit:        "€",
			Description: "Gewonnene Zeit, bewertet mit Ihrem durchschnittlichen Stundensatz.",
		},
	},
	catalog.LocaleEN: {
		OptimalSoftware: entryText{
			Title:       "Already well equipped",
			Value:       "100",
			Unit:        "%",
			Description: "You already use a solution from our portfolio. We are happy to show you how to get even more out of it.",
		},
		EfficiencyGain: entryText{
			Title:       "Efficiency gain",
			Unit:        "%",
			Description: "Firms typically raise their efficiency by about a quarter with modern practice software.",
		},
		TimeTitle: "Time saved per month",
		TimeUnit:  "hours",
		TimeBase:  "Estimated time saved through automated workflows and central file management.",
		TimeAI:    "Estimated time saved through automated workflows, central file management and integrated AI features.",
		Monetary: entryText{
			Title:       "Monetary value per month",
			Unit:        "€",
			Description: "Time saved, valued at your average hourly rate.",
		},
	},
}

func messagesFor(locale catalog.Locale) messages {
	if m, ok := localeMessages[locale]; ok {
		return m
	}
	return localeMessages[catalog.LocaleDE]
}

package recommend

// Product ids referenced by the scoring rules.
const (
	Lexolution = "lexolution"
	Winmacs    = "winmacs"
	Advoware   = "advoware"
	Winjur     = "winjur"
	Amberlo    = "amberlo"
)

const (
	neutralScore = 50

	baseWeight    = 0.7
	featureWeight = 0.3

	maxAlternatives = 3

	fallbackProduct = Advoware
)

var (
	swissProducts      = []string{Winjur, Amberlo}
	consultingProducts = []string{Lexolution}
	forensicProducts   = []string{Advoware, Winmacs}
	defaultProducts    = []string{Lexolution, Winmacs, Advoware}

	mainstreamProducts = []string{Lexolution, Amberlo, Advoware, Winmacs}
)

// sizeAdjustment returns the firm-size delta for a product. The band edges
// are literal business constants: lexolution is boosted strictly above 15
// and 50, winmacs peaks in 6..50 inclusive, advoware and amberlo drop off
// strictly above 15 and 50.
func sizeAdjustment(productID string, lawyers int) int {
	switch productID {
	case Lexolution:
		switch {
		case lawyers > 50:
			return 60
		case lawyers > 15:
			return 50
		default:
			return -30
		}
	case Winmacs:
		if lawyers >= 6 && lawyers <= 50 {
			return 50
		}
		return 10
	case Advoware, Amberlo:
		switch {
		case lawyers <= 15:
			return 50
		case lawyers <= 50:
			return 20
		default:
			return -20
		}
	}
	return 0
}

func focusAdjustment(productID, focus string) int {
	if focus == "consulting" && (productID == Lexolution || productID == Amberlo) {
		return 40
	}
	return 0
}

func billingAdjustment(productID, billing string) int {
	switch billing {
	case "hourly":
		if productID == Lexolution || productID == Amberlo {
			return 30
		}
	case "rvg":
		if productID == Advoware || productID == Winmacs {
			return 20
		}
	case "mixed":
		if contains(mainstreamProducts, productID) {
			return 10
		}
	}
	return 0
}

func notaryAdjustment(productID string, needsNotary bool) int {
	if needsNotary && (productID == Winmacs || productID == Advoware) {
		return 50
	}
	return 0
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

package quiz

// Firmographic question ids.
const (
	QuestionLocation             = "location"
	QuestionLawyerCount          = "lawyerCount"
	QuestionRefaCount            = "refaCount"
	QuestionCurrentSoftware      = "currentSoftware"
	QuestionCurrentSoftwareOther = "currentSoftwareOther"
	QuestionWorkFocus            = "workFocus"
	QuestionBillingType          = "billingType"
	QuestionNotary               = "notary"
	QuestionNotaryCount          = "notaryCount"
	QuestionAverageHourlyRate    = "averageHourlyRate"
	QuestionLanguage             = "lang"
)

// AIReadinessQuestion asks whether the firm already uses AI tooling. A "No"
// answer qualifies the firm for the AI time-saving bonus.
const AIReadinessQuestion = "maturity_q14"

// Question describes one quiz input. Display text lives in the frontend.
type Question struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Min       *int       `json:"min,omitempty"`
	DependsOn *DependsOn `json:"dependsOn,omitempty"`
}

// DependsOn shows a question only when another question has a given value.
type DependsOn struct {
	QuestionID string `json:"questionId"`
	Value      any    `json:"value"`
}

// Step is one page of the quiz.
type Step struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// maturityQuestions are the yes/no maturity items in display order.
var maturityQuestions = []string{
	"maturity_q1", "maturity_q3", "maturity_q4", "maturity_q5", "maturity_q6",
	"maturity_q7", "maturity_q8", "maturity_q9", "maturity_q10", "maturity_q11",
	"maturity_q12", "maturity_q13", "maturity_q14", "maturity_q16", "maturity_q15",
}

// MaturityQuestions returns the maturity question ids in display order.
func MaturityQuestions() []string {
	return append([]string(nil), maturityQuestions...)
}

// IsMaturityQuestion reports whether id is a maturity question.
func IsMaturityQuestion(id string) bool {
	for _, q := range maturityQuestions {
		if q == id {
			return true
		}
	}
	return false
}

// Steps returns the quiz structure.
func Steps() []Step {
	one, zero := 1, 0
	firmographics := Step{
		ID: "step1",
		Questions: []Question{
			{ID: QuestionLocation, Type: "select"},
			{ID: QuestionLawyerCount, Type: "number", Min: &one},
			{ID: QuestionRefaCount, Type: "number", Min: &zero},
			{ID: QuestionCurrentSoftware, Type: "select"},
			{ID: QuestionCurrentSoftwareOther, Type: "text", DependsOn: &DependsOn{QuestionID: QuestionCurrentSoftware, Value: "other"}},
			{ID: QuestionWorkFocus, Type: "select"},
			{ID: QuestionBillingType, Type: "select"},
			{ID: QuestionNotary, Type: "yesno"},
			{ID: QuestionNotaryCount, Type: "number", Min: &one, DependsOn: &DependsOn{QuestionID: QuestionNotary, Value: Yes}},
			{ID: QuestionAverageHourlyRate, Type: "number", Min: &zero},
		},
	}
	maturity := Step{ID: "step2", Questions: make([]Question, 0, len(maturityQuestions))}
	for _, id := range maturityQuestions {
		maturity.Questions = append(maturity.Questions, Question{ID: id, Type: "yesno"})
	}
	return []Step{firmographics, maturity}
}

// NeedMap maps a maturity question to the feature a "No" answer implies.
type NeedMap map[string]string

// DefaultNeeds is the feature-need mapping used by the product finder.
func DefaultNeeds() NeedMap {
	return NeedMap{
		"maturity_q5":  "advanced_dms",
		"maturity_q8":  "client_portal",
		"maturity_q10": "cloud_hosting",
		"maturity_q11": "bea_interface",
		"maturity_q13": "business_analytics",
		"maturity_q14": "ai_integrated_addons",
	}
}

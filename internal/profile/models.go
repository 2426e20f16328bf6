package profile

// Gender is the self-reported gender of a profile. The zero value means unset.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// HeadacheFrequency is how often the user reports having headaches.
type HeadacheFrequency string

const (
	FrequencyUnset   HeadacheFrequency = ""
	FrequencyDaily   HeadacheFrequency = "daily"
	FrequencyWeekly  HeadacheFrequency = "weekly"
	FrequencyMonthly HeadacheFrequency = "monthly"
	FrequencyRarely  HeadacheFrequency = "rarely"
)

// Common symptom labels offered by onboarding and the symptom log.
const (
	SymptomHeadache       = "headache"
	SymptomDizziness      = "dizziness"
	SymptomStiffShoulders = "stiff shoulders"
	SymptomDrowsiness     = "drowsiness"
	SymptomJointPain      = "joint pain"
	SymptomFatigue        = "fatigue"
	SymptomNausea         = "nausea"
	SymptomTinnitus       = "tinnitus"
	SymptomFever          = "fever"
	SymptomLossOfAppetite = "loss of appetite"
	SymptomSkinTrouble    = "skin trouble"
)

// Common trigger labels.
const (
	TriggerPressureChange = "pressure change"
	TriggerWeatherChange  = "weather change"
	TriggerStress         = "stress"
	TriggerLackOfSleep    = "lack of sleep"
	TriggerFatigue        = "fatigue"
	TriggerMenstrualCycle = "menstrual cycle"
	TriggerDiet           = "diet"
	TriggerAlcohol        = "alcohol"
)

const (
	MinSensitivity = 1
	MaxSensitivity = 5
)

// UserProfile is a user's self-reported health and sensitivity record.
// CommonSymptoms and Triggers have set semantics; see Normalize.
type UserProfile struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name,omitempty"`
	Prefecture          string            `json:"prefecture"`
	Age                 string            `json:"age"`
	Gender              Gender            `json:"gender" validate:"omitempty,oneof=male female other"`
	HeadacheFrequency   HeadacheFrequency `json:"headacheFrequency" validate:"omitempty,oneof=daily weekly monthly rarely"`
	PressureSensitivity int               `json:"pressureSensitivity" validate:"min=1,max=5"`
	CommonSymptoms      []string          `json:"commonSymptoms" validate:"unique"`
	Triggers            []string          `json:"triggers" validate:"unique"`
	Notifications       bool              `json:"notifications"`
}

// MatchResult pairs a candidate profile with its similarity score.
type MatchResult struct {
	Profile UserProfile `json:"user"`
	Score   float64     `json:"score"`
}

// Normalize returns a copy of p whose symptom and trigger lists contain each
// label at most once, keeping first-seen order. Blank labels are dropped.
func Normalize(p UserProfile) UserProfile {
	p.CommonSymptoms = dedupe(p.CommonSymptoms)
	p.Triggers = dedupe(p.Triggers)
	return p
}

func dedupe(labels []string) []string {
	if len(labels) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

package onboarding

import "github.com/i474232898/pressure-headache/internal/profile"

// Answers is a completed questionnaire submitted in one request.
// A nil PressureSensitivity or Notifications keeps the wizard default.
type Answers struct {
	Name                string                    `json:"name"`
	Prefecture          string                    `json:"prefecture"`
	Age                 string                    `json:"age"`
	Gender              profile.Gender            `json:"gender"`
	HeadacheFrequency   profile.HeadacheFrequency `json:"headacheFrequency"`
	PressureSensitivity *int                      `json:"pressureSensitivity"`
	CommonSymptoms      []string                  `json:"commonSymptoms"`
	Triggers            []string                  `json:"triggers"`
	Notifications       *bool                     `json:"notifications"`
}

// Run drives a fresh wizard through every step with a and completes it.
func Run(a Answers) (profile.UserProfile, error) {
	// Toggling twice would undo a selection, so submit each label once.
	picked := profile.Normalize(profile.UserProfile{CommonSymptoms: a.CommonSymptoms, Triggers: a.Triggers})

	w := New()
	for {
		switch w.Step() {
		case StepBasics:
			w.SetName(a.Name)
			w.SetAge(a.Age)
			w.SetGender(a.Gender)
			w.SetPrefecture(a.Prefecture)
		case StepFrequency:
			w.SetFrequency(a.HeadacheFrequency)
		case StepSensitivity:
			if a.PressureSensitivity != nil {
				w.SetSensitivity(*a.PressureSensitivity)
			}
		case StepSymptoms:
			for _, s := range picked.CommonSymptoms {
				w.ToggleSymptom(s)
			}
		case StepTriggers:
			for _, t := range picked.Triggers {
				w.ToggleTrigger(t)
			}
		case StepNotifications:
			if a.Notifications != nil {
				w.SetNotifications(*a.Notifications)
			}
		}
		if !w.Next() {
			return w.Complete()
		}
	}
}

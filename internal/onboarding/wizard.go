// Package onboarding walks a new user through the questions that make up a
// profile, one step at a time.
package onboarding

import (
	"errors"
	"strings"

	"github.com/i474232898/pressure-headache/internal/profile"
)

// Step identifies one screen of the wizard.
type Step int

const (
	StepBasics Step = iota
	StepFrequency
	StepSensitivity
	StepSymptoms
	StepTriggers
	StepNotifications
)

// StepCount is the number of steps in the wizard.
const StepCount = int(StepNotifications) + 1

const defaultSensitivity = 3

var (
	ErrNameRequired = errors.New("name is required")
	ErrNotFinished  = errors.New("onboarding is not on its final step")
)

var stepNames = [StepCount]string{"basics", "frequency", "sensitivity", "symptoms", "triggers", "notifications"}

func (s Step) String() string {
	if s < 0 || int(s) >= StepCount {
		return "unknown"
	}
	return stepNames[s]
}

// SymptomChoices and TriggerChoices are the options offered on their steps.
var (
	SymptomChoices = []string{
		profile.SymptomHeadache, profile.SymptomDizziness, profile.SymptomStiffShoulders,
		profile.SymptomDrowsiness, profile.SymptomJointPain, profile.SymptomFatigue,
		profile.SymptomNausea, profile.SymptomTinnitus,
	}
	TriggerChoices = []string{
		profile.TriggerPressureChange, profile.TriggerWeatherChange, profile.TriggerStress,
		profile.TriggerLackOfSleep, profile.TriggerFatigue, profile.TriggerMenstrualCycle,
		profile.TriggerDiet, profile.TriggerAlcohol,
	}
)

// Wizard holds the answers collected so far. The zero value is not usable;
// call New.
type Wizard struct {
	step    Step
	profile profile.UserProfile
}

// New starts a wizard at the first step with sensitivity 3 and
// notifications on.
func New() *Wizard {
	return &Wizard{
		profile: profile.UserProfile{
			PressureSensitivity: defaultSensitivity,
			CommonSymptoms:      []string{},
			Triggers:            []string{},
			Notifications:       true,
		},
	}
}

func (w *Wizard) Step() Step { return w.step }

// Progress is the fraction of steps reached, counting the current one.
func (w *Wizard) Progress() float64 {
	return float64(w.step+1) / float64(StepCount)
}

func (w *Wizard) IsLast() bool { return int(w.step) == StepCount-1 }

// Next advances one step. It reports false on the final step, where the
// caller should Complete instead.
func (w *Wizard) Next() bool {
	if w.IsLast() {
		return false
	}
	w.step++
	return true
}

// Back returns to the previous step, reporting false on the first one.
func (w *Wizard) Back() bool {
	if w.step == StepBasics {
		return false
	}
	w.step--
	return true
}

func (w *Wizard) SetName(name string)             { w.profile.Name = name }
func (w *Wizard) SetAge(age string)               { w.profile.Age = age }
func (w *Wizard) SetPrefecture(prefecture string) { w.profile.Prefecture = prefecture }
func (w *Wizard) SetNotifications(on bool)        { w.profile.Notifications = on }

func (w *Wizard) SetGender(g profile.Gender) {
	w.profile.Gender = g
}

func (w *Wizard) SetFrequency(f profile.HeadacheFrequency) {
	w.profile.HeadacheFrequency = f
}

// SetSensitivity records the self-reported sensitivity. Range checks happen
// on Complete.
func (w *Wizard) SetSensitivity(level int) {
	w.profile.PressureSensitivity = level
}

// ToggleSymptom adds the label if absent and removes it otherwise.
func (w *Wizard) ToggleSymptom(label string) {
	w.profile.CommonSymptoms = toggle(w.profile.CommonSymptoms, label)
}

func (w *Wizard) ToggleTrigger(label string) {
	w.profile.Triggers = toggle(w.profile.Triggers, label)
}

func toggle(labels []string, label string) []string {
	for i, l := range labels {
		if l == label {
			return append(labels[:i:i], labels[i+1:]...)
		}
	}
	return append(labels, label)
}

// Draft returns a copy of the answers collected so far.
func (w *Wizard) Draft() profile.UserProfile {
	p := w.profile
	p.CommonSymptoms = append([]string{}, p.CommonSymptoms...)
	p.Triggers = append([]string{}, p.Triggers...)
	return p
}

// Complete finishes the wizard from its final step. The name must not be
// blank and the result must pass profile validation.
func (w *Wizard) Complete() (profile.UserProfile, error) {
	if !w.IsLast() {
		return profile.UserProfile{}, ErrNotFinished
	}

	p := w.Draft()
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return profile.UserProfile{}, ErrNameRequired
	}

	p = profile.Normalize(p)
	if err := profile.Validate(p); err != nil {
		return profile.UserProfile{}, err
	}
	return p, nil
}

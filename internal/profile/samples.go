package profile

// SampleProfiles returns the demo directory used when no real profiles have
// been registered yet.
func SampleProfiles() []UserProfile {
	return []UserProfile{
		{
			ID:                  "sample-tokyo",
			Name:                "Aoi",
			Prefecture:          "Tokyo",
			Age:                 "25",
			Gender:              GenderFemale,
			HeadacheFrequency:   FrequencyWeekly,
			PressureSensitivity: 4,
			CommonSymptoms:      []string{SymptomHeadache, SymptomStiffShoulders, SymptomDizziness},
			Triggers:            []string{TriggerPressureChange, TriggerStress, TriggerLackOfSleep},
			Notifications:       true,
		},
		{
			ID:                  "sample-osaka",
			Name:                "Ren",
			Prefecture:          "Osaka",
			Age:                 "32",
			Gender:              GenderMale,
			HeadacheFrequency:   FrequencyMonthly,
			PressureSensitivity: 5,
			CommonSymptoms:      []string{SymptomHeadache, SymptomNausea},
			Triggers:            []string{TriggerPressureChange, TriggerWeatherChange, TriggerFatigue},
			Notifications:       true,
		},
		{
			ID:                  "sample-sapporo",
			Name:                "Yui",
			Prefecture:          "Hokkaido",
			Age:                 "41",
			Gender:              GenderFemale,
			HeadacheFrequency:   FrequencyDaily,
			PressureSensitivity: 3,
			CommonSymptoms:      []string{SymptomHeadache, SymptomFatigue, SymptomJointPain},
			Triggers:            []string{TriggerWeatherChange, TriggerLackOfSleep},
			Notifications:       false,
		},
		{
			ID:                  "sample-fukuoka",
			Name:                "Sora",
			Prefecture:          "Fukuoka",
			Age:                 "29",
			Gender:              GenderOther,
			HeadacheFrequency:   FrequencyRarely,
			PressureSensitivity: 2,
			CommonSymptoms:      []string{SymptomDrowsiness, SymptomTinnitus},
			Triggers:            []string{TriggerAlcohol, TriggerDiet},
			Notifications:       false,
		},
	}
}

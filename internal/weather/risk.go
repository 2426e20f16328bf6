package weather

// Sensitivity bounds that shift the first forecast day's risk for a user.
const (
	highSensitivity = 4
	lowSensitivity  = 2
)

// PersonalizedRisk returns the first forecast day's risk adjusted for the
// user's pressure sensitivity: sensitive users (>= 4) see medium as high,
// insensitive users (<= 2) see high as medium. A sensitivity of 0 means
// unknown and leaves the risk unchanged. No forecast means low risk.
func PersonalizedRisk(forecast []DailyForecast, sensitivity int) RiskLevel {
	if len(forecast) == 0 {
		return RiskLow
	}

	risk := forecast[0].RiskLevel
	if sensitivity == 0 {
		return risk
	}
	switch {
	case sensitivity >= highSensitivity && risk == RiskMedium:
		return RiskHigh
	case sensitivity <= lowSensitivity && risk == RiskHigh:
		return RiskMedium
	}
	return risk
}

// Advice returns a short recommendation for the given risk. Sensitivity 0 is
// treated as average (3).
func Advice(risk RiskLevel, sensitivity int, symptoms []string) string {
	if sensitivity == 0 {
		sensitivity = 3
	}

	switch risk {
	case RiskHigh:
		if sensitivity >= highSensitivity {
			return "You are sensitive to pressure changes, so take extra care today. Stay hydrated and don't overdo it."
		}
		return "A large pressure change is coming. Watch out for headaches, stay hydrated and don't overdo it."
	case RiskMedium:
		for _, s := range symptoms {
			if s == "dizziness" || s == "stiff shoulders" {
				return "A mild pressure change is expected. Watch out for dizziness and stiff shoulders."
			}
		}
		return "A mild pressure change is expected. Keep an eye on how you feel."
	default:
		return "Pressure is stable. Have a comfortable day."
	}
}

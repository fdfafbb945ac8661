package stats

import "github.com/ukydev/scooter-console/internal/models"

// DefaultLowBattery is the battery level below which a scooter needs charging.
const DefaultLowBattery = 20

// FleetSummary holds the headline numbers of the scooters screen.
type FleetSummary struct {
	Total          int                          `json:"total"`
	ByStatus       map[models.ScooterStatus]int `json:"byStatus"`
	LowBattery     int                          `json:"lowBattery"`
	AverageBattery float64                      `json:"averageBattery"`
}

// SummarizeFleet counts scooters per status and flags those whose battery is
// below threshold. Every canonical status is present in ByStatus.
func SummarizeFleet(scooters []models.Scooter, threshold int) FleetSummary {
	s := FleetSummary{
		Total:    len(scooters),
		ByStatus: make(map[models.ScooterStatus]int, len(models.ScooterStatuses)),
	}
	for _, st := range models.ScooterStatuses {
		s.ByStatus[st] = 0
	}
	var battery int
	for _, sc := range scooters {
		s.ByStatus[models.NormalizeScooterStatus(sc.Status)]++
		if sc.BatteryLevel < threshold {
			s.LowBattery++
		}
		battery += sc.BatteryLevel
	}
	if len(scooters) > 0 {
		s.AverageBattery = float64(battery) / float64(len(scooters))
	}
	return s
}

// Battery gauge colours.
const (
	BatteryGreen  = "green"
	BatteryYellow = "yellow"
	BatteryRed    = "red"
)

// BatteryBand names the colour a battery gauge is drawn in.
func BatteryBand(level int) string {
	switch {
	case level > 70:
		return BatteryGreen
	case level > 30:
		return BatteryYellow
	default:
		return BatteryRed
	}
}

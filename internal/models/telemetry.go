package models

// Telemetry is a point-in-time sensor reading from a scooter.
type Telemetry struct {
	ScooterID    ID        `json:"scooterId"`
	BatteryLevel float64   `json:"batteryLevel"`
	Speed        float64   `json:"speed"` // km/h
	Timestamp    Timestamp `json:"timestamp"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
}

// Position returns the reading's coordinates when both are present.
func (t Telemetry) Position() (Location, bool) {
	if t.Lat == nil || t.Lng == nil {
		return Location{}, false
	}
	return Location{Lat: *t.Lat, Lng: *t.Lng}, true
}

// SystemHealth is the IoT service health report.
type SystemHealth struct {
	Status         string         `json:"status"`
	ConnectedCount int            `json:"connectedDevices"`
	LastUpdate     Timestamp      `json:"lastUpdate"`
	Details        map[string]any `json:"details,omitempty"`
}

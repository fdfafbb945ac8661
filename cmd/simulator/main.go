package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/scooter-console/internal/api"
	"github.com/ukydev/scooter-console/internal/models"
)

// Docking stations scooters start from and return to.
var stations = []models.Location{
	{Lat: 51.5074, Lng: -0.1278}, // Trafalgar Square
	{Lat: 51.5033, Lng: -0.1196}, // London Eye
	{Lat: 51.5194, Lng: -0.1270}, // British Museum
	{Lat: 51.5079, Lng: -0.0877}, // London Bridge
	{Lat: 51.5138, Lng: -0.0984}, // St Paul's
	{Lat: 51.5007, Lng: -0.1246}, // Westminster
	{Lat: 51.5155, Lng: -0.1410}, // Oxford Circus
	{Lat: 51.5310, Lng: -0.1233}, // King's Cross
}

func jitterLocation(base models.Location, meters float64) models.Location {
	latMetersPerDeg := 111320.0
	lngMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (rand.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLng := (rand.Float64()*2 - 1) * (meters / lngMetersPerDeg)
	return models.Location{Lat: base.Lat + dLat, Lng: base.Lng + dLng}
}

func randomStation() models.Location {
	return jitterLocation(stations[rand.Intn(len(stations))], 50)
}

func haversineKm(a, b models.Location) float64 {
	R := 6371.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	s := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
	return R * c
}

// moveToward advances from a toward b by at most km.
func moveToward(a, b models.Location, km float64) models.Location {
	d := haversineKm(a, b)
	if d <= km || d == 0 {
		return b
	}
	t := km / d
	return models.Location{Lat: a.Lat + (b.Lat-a.Lat)*t, Lng: a.Lng + (b.Lng-a.Lng)*t}
}

// --- Scooter state ---

// ScooterState is one simulated scooter. A scooter either rides toward a
// destination station or stands parked at one.
type ScooterState struct {
	ID          models.ID
	Position    models.Location
	Destination *models.Location
	SpeedKmh    float64
	BatteryPct  float64
}

const (
	maxSpeedKmh  = 25.0
	drainPerKm   = 1.6 // % battery per km ridden
	rechargeAt   = 3.0
	rideChance   = 0.15
	parkedSpeed  = 0.0
	minRideSpeed = 8.0
)

// step advances the scooter by one tick.
func step(s *ScooterState, tick time.Duration) {
	if s.Destination == nil {
		s.SpeedKmh = parkedSpeed
		if s.BatteryPct <= rechargeAt {
			// swapped by the field team
			s.BatteryPct = 100
			return
		}
		if rand.Float64() < rideChance {
			dest := randomStation()
			s.Destination = &dest
		}
		return
	}

	s.SpeedKmh += (rand.Float64()*2 - 1) * 2
	if s.SpeedKmh < minRideSpeed {
		s.SpeedKmh = minRideSpeed
	}
	if s.SpeedKmh > maxSpeedKmh {
		s.SpeedKmh = maxSpeedKmh
	}

	km := s.SpeedKmh * tick.Hours()
	s.Position = moveToward(s.Position, *s.Destination, km)
	s.BatteryPct = math.Max(0, s.BatteryPct-km*drainPerKm)

	if s.Position == *s.Destination || s.BatteryPct <= rechargeAt {
		s.Destination = nil
		s.SpeedKmh = parkedSpeed
	}
}

func telemetryFromState(s *ScooterState, now time.Time) models.Telemetry {
	lat, lng := s.Position.Lat, s.Position.Lng
	return models.Telemetry{
		ScooterID:    s.ID,
		BatteryLevel: math.Round(s.BatteryPct*10) / 10,
		Speed:        math.Round(s.SpeedKmh*10) / 10,
		Timestamp:    models.NewTimestamp(now.UTC()),
		Lat:          &lat,
		Lng:          &lng,
	}
}

// --- Publishing ---

// Publisher sends one telemetry payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

type mqttPublisher struct {
	client mqtt.Client
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	return token.Error()
}

func connectMQTT(broker, clientID string) (*mqttPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timed out connecting to %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", broker, err)
	}
	return &mqttPublisher{client: client}, nil
}

func topicFor(pattern string, id models.ID) string {
	return strings.Replace(pattern, "+", id.String(), 1)
}

func sendTelemetry(pub Publisher, pattern string, tele models.Telemetry) error {
	data, err := json.Marshal(tele)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry: %w", err)
	}
	topic := topicFor(pattern, tele.ScooterID)
	if err := pub.Publish(topic, data); err != nil {
		return fmt.Errorf("failed to publish telemetry: %w", err)
	}
	log.WithFields(log.Fields{
		"scooter_id": tele.ScooterID,
		"battery":    tele.BatteryLevel,
		"topic":      topic,
	}).Debug("Sent telemetry")
	return nil
}

func simulateScooter(ctx context.Context, pub Publisher, pattern string, s *ScooterState, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			step(s, interval)
			if err := sendTelemetry(pub, pattern, telemetryFromState(s, now)); err != nil {
				log.WithError(err).WithField("scooter_id", s.ID).Error("Failed to send telemetry")
			}
		}
	}
}

// --- Fleet ---

// fleetIDs lists scooter ids from the scooter service when a token is
// available, falling back to synthetic ids.
func fleetIDs(ctx context.Context, baseURL, token string, size int) []models.ID {
	if baseURL != "" && token != "" {
		client := api.NewClient("scooter", baseURL, staticToken(token), 10*time.Second)
		scooters, err := api.NewScooterService(client).ListScooters(ctx, nil)
		if err != nil {
			log.WithError(err).Warn("Failed to list scooters, using synthetic ids")
		} else if len(scooters) > 0 {
			ids := make([]models.ID, 0, len(scooters))
			for _, sc := range scooters {
				if sc.ID != "" {
					ids = append(ids, sc.ID)
				}
			}
			if size > 0 && len(ids) > size {
				ids = ids[:size]
			}
			return ids
		}
	}
	ids := make([]models.ID, size)
	for i := range ids {
		ids[i] = models.ID(fmt.Sprintf("SC-%03d", i+1))
	}
	return ids
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newFleet(ids []models.ID) []*ScooterState {
	states := make([]*ScooterState, 0, len(ids))
	for _, id := range ids {
		states = append(states, &ScooterState{
			ID:         id,
			Position:   randomStation(),
			BatteryPct: 30 + rand.Float64()*70,
		})
	}
	return states
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			return n
		}
	}
	return fallback
}

func main() {
	fleetSize := envInt("FLEET_SIZE", 10)
	interval := time.Duration(envInt("SIM_TICK_SECONDS", 2)) * time.Second

	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}
	pattern := os.Getenv("MQTT_TOPIC")
	if pattern == "" {
		pattern = "scooters/+/telemetry"
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"broker":     broker,
		"interval":   interval,
	}).Info("Starting scooter simulation")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pub, err := connectMQTT(broker, fmt.Sprintf("scooter-simulator-%d", os.Getpid()))
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to broker")
	}
	defer pub.client.Disconnect(250)

	states := newFleet(fleetIDs(ctx, os.Getenv("SCOOTER_BASE_URL"), os.Getenv("SIM_AUTH_TOKEN"), fleetSize))
	log.WithField("scooters", len(states)).Info("Telemetry simulation started")

	var wg sync.WaitGroup
	for _, s := range states {
		wg.Add(1)
		go func(s *ScooterState) {
			defer wg.Done()
			simulateScooter(ctx, pub, pattern, s, interval)
		}(s)
	}
	wg.Wait()
	log.Info("Simulation stopped")
}

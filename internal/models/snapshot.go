package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardSnapshot is an archived copy of the dashboard numbers.
type DashboardSnapshot struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TakenAt         time.Time          `bson:"taken_at" json:"takenAt"`
	TotalRides      int                `bson:"total_rides" json:"totalRides"`
	ActiveRides     int                `bson:"active_rides" json:"activeRides"`
	UniqueUsers     int                `bson:"unique_users" json:"uniqueUsers"`
	TotalRevenue    float64            `bson:"total_revenue" json:"totalRevenue"`
	TotalScooters   int                `bson:"total_scooters" json:"totalScooters"`
	LowBattery      int                `bson:"low_battery" json:"lowBattery"`
	ScootersByState map[string]int     `bson:"scooters_by_state" json:"scootersByState"`
	RidesByDay      map[string]int     `bson:"rides_by_day" json:"ridesByDay"`
}

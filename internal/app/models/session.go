package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is a doctor's recurring weekly availability template at one
// establishment. StartTime/EndTime carry only a time of day; their calendar
// date is meaningless and gets projected onto the requested date in UTC.
// Sessions are written by doctor-management tooling and read-only here.
type Session struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	DoctorID        string             `bson:"doctorId" json:"doctorId"`
	EstablishmentID string             `bson:"establishmentId" json:"establishmentId"`
	Weekdays        []string           `bson:"weekdays" json:"weekdays"`
	StartTime       time.Time          `bson:"startTime" json:"startTime"`
	EndTime         time.Time          `bson:"endTime" json:"endTime"`
}

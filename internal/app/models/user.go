package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Address struct {
	Line       string `bson:"line,omitempty" json:"line,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
}

// User covers both patients and doctors. Price is the doctor's per-minute
// rate; MeetLink is used as the visit location for virtual establishments.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	Prefix      string             `bson:"prefix,omitempty" json:"prefix,omitempty"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	PsyID       string             `bson:"psyID,omitempty" json:"psyID,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
	MeetLink    string             `bson:"meetLink,omitempty" json:"meetLink,omitempty"`
	Addresses   []Address          `bson:"addresses,omitempty" json:"addresses,omitempty"`
}

// DisplayNameWithPrefix prepends the honorific when present, e.g. "Dr. Asha".
func (u *User) DisplayNameWithPrefix() string {
	if u.Prefix == "" {
		return u.DisplayName
	}
	return u.Prefix + " " + u.DisplayName
}

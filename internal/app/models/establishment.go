package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Establishment struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EstablishmentName    string             `bson:"establishmentName" json:"establishmentName"`
	EstablishmentAddress string             `bson:"establishmentAddress" json:"establishmentAddress"`
	Phone                string             `bson:"phone" json:"phone"`
	Email                string             `bson:"email" json:"email"`
	Logo                 string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Website              string             `bson:"website,omitempty" json:"website,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoterRecord is the canonical bilingual entity persisted per roll entry.
// Name/gender are stored once per script; an empty slot means the source
// sheet had nothing for that language, never that the other script's value
// should stand in for it.
type VoterRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SerialNumber string             `bson:"serial_number,omitempty" json:"serialNumber"`
	HouseNumber  string             `bson:"house_number,omitempty" json:"houseNumber"`
	Name         string             `bson:"name" json:"name"`
	NameMr       string             `bson:"name_mr" json:"name_mr"`
	Gender       string             `bson:"gender" json:"gender"`
	GenderMr     string             `bson:"gender_mr" json:"gender_mr"`
	Age          int                `bson:"age" json:"age"`
	VoterIDCard  string             `bson:"voter_id_card,omitempty" json:"voterIdCard"`
	MobileNumber string             `bson:"mobile_number,omitempty" json:"mobileNumber"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	Name      string             `bson:"name"                 json:"name"`
	PinNumber string             `bson:"pin_number,omitempty" json:"pin_number,omitempty"` // sourced from provider family name; mapping is TBD
	Email     string             `bson:"email"                json:"email"`
	GoogleID  string             `bson:"google_id,omitempty"  json:"google_id,omitempty"` // Google sub
	CreatedAt time.Time          `bson:"created_at"           json:"created_at"`
}

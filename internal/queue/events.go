package queue

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Exchange = "auth.events"

type UserSignedUp struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type UserLoggedIn struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type UserLoggedOut struct {
	UserID primitive.ObjectID `json:"user_id"`
}

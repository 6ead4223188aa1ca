package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscriber struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	SubscriptionDate time.Time          `bson:"subscriptionDate" json:"subscriptionDate"`
	Active           bool               `bson:"active" json:"active"`
}

package models

import "time"

// Account is the slim view of a marketplace party (customer or provider) that
// the notification layer needs: a display name and a push token. Account
// registration and authentication live in the identity backend, not here.
type Account struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Named visibility classes. A Want is either visible to one of these
// groups or to an explicit list of user ids.
const (
	VisibleToEveryone = "everyone"
	VisibleToFriends  = "friends"
)

// WantLocation scopes a Want's visibility to an area around an address.
type WantLocation struct {
	Address        string  `bson:"address" json:"address"`
	RadiusInMeters float64 `bson:"radius_in_meters" json:"radius_in_meters"`
}

// WantVisibility describes who may view a Want. Either VisibleTo holds a
// named class, or VisibleToIDs holds an explicit allow-list.
type WantVisibility struct {
	VisibleTo    string               `bson:"visible_to,omitempty" json:"visible_to,omitempty"`
	VisibleToIDs []primitive.ObjectID `bson:"visible_to_ids,omitempty" json:"visible_to_ids,omitempty"`
	Location     *WantLocation        `bson:"location,omitempty" json:"location,omitempty"`
}

// WantImage holds the public URL of an uploaded image. It is only ever
// written after the object storage upload has succeeded.
type WantImage struct {
	URL string `bson:"url" json:"url"`
}

type Want struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Creator     primitive.ObjectID   `bson:"creator" json:"creator"`
	Admins      []primitive.ObjectID `bson:"admins" json:"admins"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Visibility  WantVisibility       `bson:"visibility" json:"visibility"`
	Image       *WantImage           `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

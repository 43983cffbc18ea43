package db_models

import (
	"time"

	"github.com/lib/pq"
)

// Account is a traveler known by the identity provider's uid. SavedTrips holds
// trip ids, newest first.
type Account struct {
	BaseModel
	UID        string `gorm:"uniqueIndex;not null"`
	Email      string `gorm:"index"`
	Name       string
	LastLogin  int64
	SavedTrips pq.StringArray `gorm:"type:text[]"`

	Trips []SavedTrip `gorm:"foreignKey:AccountID"`
}

func (a *Account) LastLoginTime() time.Time {
	return time.Unix(a.LastLogin, 0).UTC()
}

package models

import "time"

// Driver represents a truck driver.
type Driver struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	AltPhone  string    `json:"alt_phone,omitempty" bson:"alt_phone,omitempty"`
	HomePhone string    `json:"home_phone,omitempty" bson:"home_phone,omitempty"`
	LicenseNo string    `json:"license_no,omitempty" bson:"license_no,omitempty"`
	AadharNo  string    `json:"aadhar_no,omitempty" bson:"aadhar_no,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

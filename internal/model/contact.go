// internal/model/contact.go
package model

// Contact is a synced directory entry. Empty optional fields mean "absent".
type Contact struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Headline  string `db:"headline" json:"headline,omitempty"`
	Company   string `db:"company" json:"company,omitempty"`
	Industry  string `db:"industry" json:"industry,omitempty"`
	Location  string `db:"location" json:"location,omitempty"`
}

// Segment groups contacts sharing an (industry, location) pair.
type Segment struct {
	Industry string   `json:"industry"`
	Location string   `json:"location"`
	Count    int      `json:"count"`
	Contacts []string `json:"contacts"`
}

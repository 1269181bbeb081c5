package models

// User is a portal account: a resident or a staff member. Only the fields
// the scheduling service denormalizes onto slots live here.
type User struct {
	ID         string `bson:"id" json:"id"`
	Role       string `bson:"role" json:"role"` // "resident" | "staff" | "admin"
	FirstName  string `bson:"firstName" json:"firstName"`
	MiddleName string `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName   string `bson:"lastName" json:"lastName"`
	BarangayID string `bson:"barangayId,omitempty" json:"barangayId,omitempty"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`
}

// DisplayName joins the name parts the way the portal shows them.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.MiddleName != "" {
		name += " " + u.MiddleName
	}
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// Identity is the denormalized view written onto slot records. Fields stay
// empty when the lookup fails; that is not an error.
type Identity struct {
	DisplayName string `json:"displayName,omitempty"`
	BarangayID  string `json:"barangayId,omitempty"`
}

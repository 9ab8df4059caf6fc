package domain

// ProfileType tags the role of a household member.
type ProfileType string

const (
	ProfilePrimary ProfileType = "primary"
	ProfileSpouse  ProfileType = "spouse"
	ProfileChild   ProfileType = "child"
)

// Profile is a household member a transaction can be attributed to.
type Profile struct {
	ProfileID string      `json:"profileID"`
	UserID    string      `json:"userID"`
	Name      string      `json:"name"`
	Type      ProfileType `json:"type"`
	PhotoURL  *string     `json:"photoURL,omitempty"`
	IsActive  bool        `json:"isActive"`
	AuditFields
}

package models

// Contact is a member of the user's care team.
type Contact struct {
	BaseUUIDModel
	UserID    string `gorm:"type:varchar(64);not null;index" json:"-"`
	Name      string `gorm:"type:varchar(100);not null"      json:"name"`
	Role      string `gorm:"type:varchar(100);not null"      json:"role"`
	Phone     string `gorm:"type:varchar(50);not null"       json:"phone"`
	Notes     string `gorm:"type:text;not null"              json:"notes"`
	SortOrder int    `gorm:"not null;default:0"              json:"sortOrder"`
}

type ContactInput struct {
	Name      string `json:"name"      validate:"notblank,max=100"`
	Role      string `json:"role"      validate:"max=100"`
	Phone     string `json:"phone"     validate:"max=50"`
	Notes     string `json:"notes"     validate:"max=1000"`
	SortOrder *int   `json:"sortOrder" validate:"omitnil,gte=0"`
}

func (in ContactInput) Apply(c *Contact) {
	c.Name = in.Name
	c.Role = in.Role
	c.Phone = in.Phone
	c.Notes = in.Notes
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
}

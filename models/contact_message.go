package models

// ContactMessage is a submission from the public contact form. IsRead and
// IsReplied are independent flags.
type ContactMessage struct {
	Base
	Name      string `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Email     string `json:"email" db:"email" gorm:"type:varchar(255);not null"`
	Subject   string `json:"subject" db:"subject" gorm:"type:varchar(255)"`
	Message   string `json:"message" db:"message" gorm:"type:text;not null"`
	IsRead    bool   `json:"is_read" db:"is_read" gorm:"not null;index"`
	IsReplied bool   `json:"is_replied" db:"is_replied" gorm:"not null;index"`
	IPAddress string `json:"ip_address,omitempty" db:"ip_address" gorm:"type:varchar(64)"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a control-panel account. Public display and report pages
// need no account; every mutating endpoint does.
type Operator struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	DisplayName  string    `json:"displayName" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type OperatorSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OperatorID       uuid.UUID `json:"operatorId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}

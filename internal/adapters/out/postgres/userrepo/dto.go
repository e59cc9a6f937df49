// Package userrepo persists user accounts and their saved addresses.
package userrepo

import (
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Phone        string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"index;not null"`
	Active       bool   `gorm:"not null"`
	CreatedAt    time.Time
	Addresses    []AddressDTO `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserDTO) TableName() string {
	return "users"
}

// AddressDTO keeps the user's list order in Position.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Position   int
	Label      string
	Recipient  string
	Phone      string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Country    string
	IsDefault  bool
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:           u.ID().Bytes(),
		Email:        u.Email(),
		Name:         u.Name(),
		Phone:        u.Phone(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Active:       u.IsActive(),
		CreatedAt:    u.CreatedAt(),
	}
	dto.Addresses = addressesFromDomain(u)
	return dto
}

func addressesFromDomain(u *user.User) []AddressDTO {
	addresses := u.Addresses()
	dtos := make([]AddressDTO, 0, len(addresses))
	for i, a := range addresses {
		f := a.Fields()
		dtos = append(dtos, AddressDTO{
			ID:         a.ID().Bytes(),
			UserID:     u.ID().Bytes(),
			Position:   i,
			Label:      f.Label,
			Recipient:  f.Recipient,
			Phone:      f.Phone,
			Line1:      f.Line1,
			Line2:      f.Line2,
			City:       f.City,
			PostalCode: f.PostalCode,
			Country:    f.Country,
			IsDefault:  a.IsDefault(),
		})
	}
	return dtos
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	addresses := make([]user.Address, 0, len(dto.Addresses))
	for _, a := range dto.Addresses {
		addressID, idErr := kernel.UUIDFromBytes(a.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		address, addrErr := user.RestoreAddress(addressID, user.AddressFields{
			Label:      a.Label,
			Recipient:  a.Recipient,
			Phone:      a.Phone,
			Line1:      a.Line1,
			Line2:      a.Line2,
			City:       a.City,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}, a.IsDefault)
		if addrErr != nil {
			return nil, addrErr
		}
		addresses = append(addresses, address)
	}

	return user.RestoreUser(id, dto.Email, dto.Name, dto.Phone, dto.PasswordHash, user.Role(dto.Role),
		dto.Active, addresses, dto.CreatedAt)
}

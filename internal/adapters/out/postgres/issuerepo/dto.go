// Package issuerepo persists support issues and their message threads.
package issuerepo

import (
	"time"

	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type IssueDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Subject    string    `gorm:"not null"`
	Category   string    `gorm:"not null"`
	Status     int       `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time

	Messages []MessageDTO `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
}

func (IssueDTO) TableName() string {
	return "issues"
}

type MessageDTO struct {
	IssueID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	AuthorRole string    `gorm:"not null"`
	Body       string    `gorm:"not null"`
	At         time.Time
}

func (MessageDTO) TableName() string {
	return "issue_messages"
}

func fromDomain(i *issue.Issue) IssueDTO {
	dto := IssueDTO{
		ID:         i.ID().Bytes(),
		OrderID:    i.OrderID().Bytes(),
		CustomerID: i.CustomerID().Bytes(),
		Subject:    i.Subject(),
		Category:   string(i.Category()),
		Status:     int(i.Status()),
		CreatedAt:  i.CreatedAt(),
		UpdatedAt:  i.UpdatedAt(),
	}
	dto.Messages = messagesFromDomain(dto.ID, i.Messages(), 0)
	return dto
}

func messagesFromDomain(issueID uuid.UUID, messages []issue.Message, offset int) []MessageDTO {
	dtos := make([]MessageDTO, 0, len(messages))
	for n, m := range messages {
		dtos = append(dtos, MessageDTO{
			IssueID:    issueID,
			Seq:        offset + n,
			AuthorID:   m.AuthorID.Bytes(),
			AuthorRole: m.AuthorRole.String(),
			Body:       m.Body,
			At:         m.At,
		})
	}
	return dtos
}

// ToDomain rebuilds an issue from a row with its messages loaded in order.
func ToDomain(dto IssueDTO) (*issue.Issue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	messages := make([]issue.Message, 0, len(dto.Messages))
	for _, m := range dto.Messages {
		authorID, idErr := kernel.UUIDFromBytes(m.AuthorID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, issue.Message{
			AuthorID:   authorID,
			AuthorRole: user.Role(m.AuthorRole),
			Body:       m.Body,
			At:         m.At,
		})
	}

	return issue.RestoreIssue(id, orderID, customerID, dto.Subject, issue.Category(dto.Category),
		issue.Status(dto.Status), messages, dto.CreatedAt, dto.UpdatedAt)
}

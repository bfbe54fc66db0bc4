package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you/contactsvc/domain"
	"gorm.io/gorm"
)

// ContactRepositoryImpl implements domain.ContactRepository using GORM.
// Every query is filtered on the owning user.
type ContactRepositoryImpl struct {
	db *gorm.DB
}

// DBContact represents the database model for Contact
type DBContact struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"size:50;not null;index"`
	LastName  string    `gorm:"size:50;not null;index"`
	Email     string    `gorm:"size:100;not null;uniqueIndex"`
	Phone     string    `gorm:"size:20;not null;uniqueIndex"`
	Birthday  time.Time `gorm:"type:date;not null"`
	ExtraData *string   `gorm:"size:255"`
	UserID    uint      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DBContact) TableName() string {
	return "contacts"
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) domain.ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

// Create implements domain.ContactRepository
func (r *ContactRepositoryImpl) Create(ctx context.Context, contact *domain.Contact) error {
	dbContact := contactToDB(contact)
	if err := r.db.WithContext(ctx).Create(dbContact).Error; err != nil {
		return translateContactError(err)
	}
	contact.ID = dbContact.ID
	return nil
}

// List implements domain.ContactRepository
func (r *ContactRepositoryImpl) List(ctx context.Context, ownerID uint, offset, limit int) ([]domain.Contact, error) {
	var rows []DBContact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return contactsToDomain(rows), nil
}

// ListAll implements domain.ContactRepository
func (r *ContactRepositoryImpl) ListAll(ctx context.Context, ownerID uint) ([]domain.Contact, error) {
	var rows []DBContact
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return contactsToDomain(rows), nil
}

// FindByID implements domain.ContactRepository
func (r *ContactRepositoryImpl) FindByID(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	var row DBContact
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	contact := contactToDomain(&row)
	return &contact, nil
}

// Update implements domain.ContactRepository. All editable fields are replaced.
func (r *ContactRepositoryImpl) Update(ctx context.Context, contact *domain.Contact) error {
	res := r.db.WithContext(ctx).
		Model(&DBContact{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(map[string]interface{}{
			"first_name": contact.FirstName,
			"last_name":  contact.LastName,
			"email":      contact.Email,
			"phone":      contact.Phone,
			"birthday":   contact.Birthday,
			"extra_data": contact.ExtraData,
		})
	if res.Error != nil {
		return translateContactError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

// Delete implements domain.ContactRepository and returns the removed row
func (r *ContactRepositoryImpl) Delete(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	var deleted *domain.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DBContact
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrContactNotFound
			}
			return err
		}
		if err := tx.Delete(&DBContact{}, row.ID).Error; err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		contact := contactToDomain(&row)
		deleted = &contact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Search implements domain.ContactRepository. Criteria are case-insensitive substrings, ANDed.
func (r *ContactRepositoryImpl) Search(ctx context.Context, ownerID uint, filter domain.ContactFilter) ([]domain.Contact, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	for column, value := range map[string]string{
		"first_name": filter.FirstName,
		"last_name":  filter.LastName,
		"email":      filter.Email,
	} {
		if value == "" {
			continue
		}
		q = q.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", "%"+escapeLike(value)+"%")
	}

	var rows []DBContact
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return contactsToDomain(rows), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func translateContactError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrContactConflict
	}
	return err
}

func contactToDB(c *domain.Contact) *DBContact {
	return &DBContact{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday,
		ExtraData: c.ExtraData,
		UserID:    c.UserID,
	}
}

func contactToDomain(row *DBContact) domain.Contact {
	// drivers disagree on the zone of DATE columns; normalise to a UTC calendar date
	y, m, d := row.Birthday.Date()
	return domain.Contact{
		ID:     row.ID,
		UserID: row.UserID,
		ContactFields: domain.ContactFields{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
			Birthday:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			ExtraData: row.ExtraData,
		},
	}
}

func contactsToDomain(rows []DBContact) []domain.Contact {
	contacts := make([]domain.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, contactToDomain(&rows[i]))
	}
	return contacts
}

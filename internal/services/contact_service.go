package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/you/contactsvc/domain"
)

const (
	DefaultContactLimit = 100
	MaxContactLimit     = 1000
	// BirthdayWindowDays is how many days past today the birthday lookup reaches, inclusive
	BirthdayWindowDays = 7
)

var contactEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactServiceImpl implements domain.ContactService
type ContactServiceImpl struct {
	repo domain.ContactRepository
	now  func() time.Time
}

// NewContactService creates a new contact service
func NewContactService(repo domain.ContactRepository) domain.ContactService {
	return NewContactServiceWithClock(repo, time.Now)
}

// NewContactServiceWithClock is NewContactService with an injected clock
func NewContactServiceWithClock(repo domain.ContactRepository, now func() time.Time) domain.ContactService {
	return &ContactServiceImpl{repo: repo, now: now}
}

// Create implements domain.ContactService
func (s *ContactServiceImpl) Create(ctx context.Context, ownerID uint, fields domain.ContactFields) (*domain.Contact, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}

	contact := &domain.Contact{UserID: ownerID, ContactFields: fields}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// List implements domain.ContactService
func (s *ContactServiceImpl) List(ctx context.Context, ownerID uint, offset, limit int) ([]domain.Contact, error) {
	if offset < 0 {
		offset = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultContactLimit
	case limit > MaxContactLimit:
		limit = MaxContactLimit
	}
	return s.repo.List(ctx, ownerID, offset, limit)
}

// Get implements domain.ContactService
func (s *ContactServiceImpl) Get(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// Update implements domain.ContactService. Every field is replaced.
func (s *ContactServiceImpl) Update(ctx context.Context, ownerID, id uint, fields domain.ContactFields) (*domain.Contact, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}

	contact := &domain.Contact{ID: id, UserID: ownerID, ContactFields: fields}
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete implements domain.ContactService
func (s *ContactServiceImpl) Delete(ctx context.Context, ownerID, id uint) (*domain.Contact, error) {
	return s.repo.Delete(ctx, ownerID, id)
}

// Search implements domain.ContactService
func (s *ContactServiceImpl) Search(ctx context.Context, ownerID uint, filter domain.ContactFilter) ([]domain.Contact, error) {
	filter.FirstName = strings.TrimSpace(filter.FirstName)
	filter.LastName = strings.TrimSpace(filter.LastName)
	filter.Email = strings.TrimSpace(filter.Email)
	return s.repo.Search(ctx, ownerID, filter)
}

// UpcomingBirthdays implements domain.ContactService.
// Matching is on month and day so the window wraps across New Year.
func (s *ContactServiceImpl) UpcomingBirthdays(ctx context.Context, ownerID uint) ([]domain.Contact, error) {
	contacts, err := s.repo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	today := truncateToDate(s.now())
	upcoming := make([]domain.Contact, 0)
	for _, c := range contacts {
		if birthdayWithin(c.Birthday, today, BirthdayWindowDays) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// birthdayWithin reports whether birthday's anniversary falls on one of
// today, today+1, ..., today+days
func birthdayWithin(birthday, today time.Time, days int) bool {
	for d := 0; d <= days; d++ {
		day := today.AddDate(0, 0, d)
		if anniversary(birthday, day.Year()).Equal(day) {
			return true
		}
	}
	return false
}

// anniversary is birthday moved to year. Feb 29 falls on Feb 28 outside leap years.
func anniversary(birthday time.Time, year int) time.Time {
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeFields(f domain.ContactFields) (domain.ContactFields, error) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)

	switch {
	case f.FirstName == "" || f.LastName == "":
		return f, fmt.Errorf("%w: first and last name are required", domain.ErrInvalidInput)
	case !contactEmailPattern.MatchString(f.Email):
		return f, fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	case f.Phone == "":
		return f, fmt.Errorf("%w: phone is required", domain.ErrInvalidInput)
	case f.Birthday.IsZero():
		return f, fmt.Errorf("%w: birthday is required", domain.ErrInvalidInput)
	}
	f.Birthday = truncateToDate(f.Birthday)
	return f, nil
}

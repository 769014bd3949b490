package catalog

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/shared"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
)

// CompanyStatus represents whether a company's catalog is open
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

// IsValid reports whether the status is a known value
func (s CompanyStatus) IsValid() bool {
	return s == CompanyStatusActive || s == CompanyStatusInactive
}

// CompanyInfo holds registration and contact data
type CompanyInfo struct {
	CNPJ                string
	Email               string
	PhoneNumber         string
	DeliveryPhoneNumber string
}

// CompanyAddress holds the company's postal address
type CompanyAddress struct {
	ZipCode string
	Address string
}

// Company is the store that owns a catalog. It is owned by a user of the
// external authentication provider.
type Company struct {
	shared.BaseAggregateRoot
	OwnerID string
	Name    string
	Slug    string
	Status  CompanyStatus
	Info    CompanyInfo
	Address CompanyAddress
}

// NewCompany creates a new active company. When slug is empty it is derived from name.
func NewCompany(ownerID, name, slug string) (*Company, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Company owner is required")
	}
	name = strings.TrimSpace(name)
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if err := validateCompanySlug(slug); err != nil {
		return nil, err
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              name,
		Slug:              slug,
		Status:            CompanyStatusActive,
	}
	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// UpdateProfile replaces the company's name and slug
func (c *Company) UpdateProfile(name, slug string) error {
	name = strings.TrimSpace(name)
	if err := validateCompanyName(name); err != nil {
		return err
	}
	if err := validateCompanySlug(slug); err != nil {
		return err
	}

	c.Name = name
	c.Slug = slug
	c.touch()
	c.AddDomainEvent(NewCompanyUpdatedEvent(c))
	return nil
}

// SetStatus changes the company status
func (c *Company) SetStatus(status CompanyStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Company status must be ACTIVE or INACTIVE")
	}
	if c.Status == status {
		return nil
	}

	old := c.Status
	c.Status = status
	c.touch()
	c.AddDomainEvent(NewCompanyStatusChangedEvent(c, old, status))
	return nil
}

// UpdateInfo replaces the company's registration and contact data
func (c *Company) UpdateInfo(info CompanyInfo) error {
	if info.CNPJ != "" {
		cnpj, err := valueobject.NewCNPJ(info.CNPJ)
		if err != nil {
			return shared.NewDomainError("INVALID_CNPJ", "Company CNPJ is invalid")
		}
		info.CNPJ = cnpj.String()
	}
	if info.Email != "" {
		if _, err := mail.ParseAddress(info.Email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "Company email is invalid")
		}
	}

	c.Info = info
	c.touch()
	c.AddDomainEvent(NewCompanyUpdatedEvent(c))
	return nil
}

// UpdateAddress replaces the company's address
func (c *Company) UpdateAddress(address CompanyAddress) error {
	if address.ZipCode != "" {
		zip := strings.NewReplacer("-", "", ".", "", " ", "").Replace(address.ZipCode)
		if len(zip) != 8 {
			return shared.NewDomainError("INVALID_ZIP_CODE", "Zip code must have 8 digits")
		}
		address.ZipCode = zip
	}
	address.Address = strings.TrimSpace(address.Address)

	c.Address = address
	c.touch()
	c.AddDomainEvent(NewCompanyUpdatedEvent(c))
	return nil
}

// IsActive returns true if the company is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// IsOwnedBy returns true if the given auth user owns the company
func (c *Company) IsOwnedBy(userID string) bool {
	return userID != "" && c.OwnerID == userID
}

func (c *Company) touch() {
	c.Touch()
	c.IncrementVersion()
}

// CompanyIDs extracts the IDs of the given companies
func CompanyIDs(companies []Company) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(companies))
	for i := range companies {
		ids = append(ids, companies[i].ID)
	}
	return ids
}

func validateCompanyName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 100 characters")
	}
	return nil
}

func validateCompanySlug(slug string) error {
	if !IsValidSlug(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Company slug must contain only lowercase letters, numbers and dashes")
	}
	return nil
}

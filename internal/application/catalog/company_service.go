package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared"
)

// CompanyService handles company-related business operations
type CompanyService struct {
	companyRepo    catalog.CompanyRepository
	eventPublisher shared.EventPublisher
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo catalog.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CompanyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a company owned by the given auth user. The slug is derived
// from the name when not given.
func (s *CompanyService) Create(ctx context.Context, ownerID string, req CreateCompanyRequest) (*CompanyResponse, error) {
	company, err := catalog.NewCompany(ownerID, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSlugAvailable(ctx, company.Slug); err != nil {
		return nil, err
	}

	if req.CompanyInfo != nil {
		if err := company.UpdateInfo(toCompanyInfo(req.CompanyInfo)); err != nil {
			return nil, err
		}
	}
	if req.CompanyAddress != nil {
		if err := company.UpdateAddress(toCompanyAddress(req.CompanyAddress)); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// GetBySlug retrieves a company by its public slug
func (s *CompanyService) GetBySlug(ctx context.Context, slug string) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// ListForOwner lists the companies owned by an auth user
func (s *CompanyService) ListForOwner(ctx context.Context, ownerID string, filter ListFilter, status string) ([]CompanyResponse, int64, error) {
	domainFilter := filter.toDomain("name", "asc")
	if status != "" {
		domainFilter = domainFilter.Where("status", status)
	}

	companies, err := s.companyRepo.FindAllByOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.companyRepo.CountByOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCompanyResponses(companies), total, nil
}

// Edit applies the given blocks of an EditCompanyRequest
func (s *CompanyService) Edit(ctx context.Context, id uuid.UUID, req EditCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if profile := req.Company; profile != nil {
		if profile.Name != nil || profile.Slug != nil {
			name, slug := company.Name, company.Slug
			if profile.Name != nil {
				name = *profile.Name
			}
			if profile.Slug != nil && *profile.Slug != company.Slug {
				slug = *profile.Slug
				if err := s.ensureSlugAvailable(ctx, slug); err != nil {
					return nil, err
				}
			}
			if err := company.UpdateProfile(name, slug); err != nil {
				return nil, err
			}
		}
		if profile.Status != nil {
			if err := company.SetStatus(catalog.CompanyStatus(*profile.Status)); err != nil {
				return nil, err
			}
		}
	}
	if req.CompanyInfo != nil {
		if err := company.UpdateInfo(toCompanyInfo(req.CompanyInfo)); err != nil {
			return nil, err
		}
	}
	if req.CompanyAddress != nil {
		if err := company.UpdateAddress(toCompanyAddress(req.CompanyAddress)); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, shared.RewrapRequestError(err)
	}
	publishDomainEvents(ctx, s.eventPublisher, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// OwnedBy returns the company if the auth user owns it.
// A company owned by someone else is reported as not found.
func (s *CompanyService) OwnedBy(ctx context.Context, id uuid.UUID, userID string) (*catalog.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !company.IsOwnedBy(userID) {
		return nil, shared.ErrNotFound
	}
	return company, nil
}

func (s *CompanyService) ensureSlugAvailable(ctx context.Context, slug string) error {
	exists, err := s.companyRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return shared.RewrapRequestError(err)
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Company slug already in use")
	}
	return nil
}

func toCompanyInfo(in *CompanyInfoInput) catalog.CompanyInfo {
	return catalog.CompanyInfo{
		CNPJ:                in.CNPJ,
		Email:               in.Email,
		PhoneNumber:         in.PhoneNumber,
		DeliveryPhoneNumber: in.DeliveryPhoneNumber,
	}
}

func toCompanyAddress(in *CompanyAddressInput) catalog.CompanyAddress {
	return catalog.CompanyAddress{
		ZipCode: in.ZipCode,
		Address: in.Address,
	}
}

// isNotFound reports whether err is the domain not-found error
func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}

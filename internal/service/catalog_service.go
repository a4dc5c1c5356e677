package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
)

// CatalogService manages the reference data events point to.
type CatalogService struct {
	categoryRepo *repository.Repository[models.EventCategory]
	locationRepo *repository.Repository[models.Location]
	roleRepo     *repository.Repository[models.Role]
}

func NewCatalogService(
	categoryRepo *repository.Repository[models.EventCategory],
	locationRepo *repository.Repository[models.Location],
	roleRepo *repository.Repository[models.Role],
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		roleRepo:     roleRepo,
	}
}

// Categories

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.EventCategory, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.EventCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.EventCategory, error) {
	category := &models.EventCategory{CategoryName: req.CategoryName}
	if err := s.categoryRepo.Add(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req models.CategoryRequest) (*models.EventCategory, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.CategoryName = req.CategoryName
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

// Locations

func (s *CatalogService) GetLocations(ctx context.Context) ([]models.Location, error) {
	return s.locationRepo.GetAll(ctx)
}

func (s *CatalogService) GetLocation(ctx context.Context, id uint) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "location", id)
	}
	return location, nil
}

func (s *CatalogService) GetLocationsByCity(ctx context.Context, city string) ([]models.Location, error) {
	return s.locationRepo.GetWhere(ctx, repository.Where("LOWER(city) = LOWER(?)", city))
}

func (s *CatalogService) GetLocationsByCountry(ctx context.Context, country string) ([]models.Location, error) {
	return s.locationRepo.GetWhere(ctx, repository.Where("LOWER(country) = LOWER(?)", country))
}

func (s *CatalogService) CreateLocation(ctx context.Context, req models.LocationRequest) (*models.Location, error) {
	location := &models.Location{
		Address:   req.Address,
		City:      req.City,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.locationRepo.Add(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *CatalogService) UpdateLocation(ctx context.Context, id uint, req models.LocationRequest) (*models.Location, error) {
	location, err := s.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Address = req.Address
	location.City = req.City
	location.Country = req.Country
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *CatalogService) DeleteLocation(ctx context.Context, id uint) error {
	return s.locationRepo.Delete(ctx, id)
}

// Roles

func (s *CatalogService) GetRoles(ctx context.Context) ([]models.Role, error) {
	return s.roleRepo.GetAll(ctx)
}

func (s *CatalogService) GetRole(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "role", id)
	}
	return role, nil
}

func (s *CatalogService) CreateRole(ctx context.Context, req models.RoleRequest) (*models.Role, error) {
	role := &models.Role{RoleName: req.RoleName}
	if err := s.roleRepo.Add(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Admin, Organizer ve Attendee yetkilendirmede isimle aranır, değiştirilemez
func isSeededRole(name string) bool {
	switch name {
	case models.RoleAdmin, models.RoleOrganizer, models.RoleAttendee:
		return true
	}
	return false
}

func (s *CatalogService) UpdateRole(ctx context.Context, id uint, req models.RoleRequest) (*models.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if isSeededRole(role.RoleName) {
		return nil, fmt.Errorf("%w: role %s is built in", ErrForbidden, role.RoleName)
	}
	role.RoleName = req.RoleName
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a custom role. Missing roles are not an error.
func (s *CatalogService) DeleteRole(ctx context.Context, id uint) error {
	role, err := s.roleRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if isSeededRole(role.RoleName) {
		return fmt.Errorf("%w: role %s is built in", ErrForbidden, role.RoleName)
	}
	return s.roleRepo.Delete(ctx, id)
}

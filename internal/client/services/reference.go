package services

import (
	"context"

	"github.com/dmitrijs2005/tsheets/internal/client/cache"
	"github.com/dmitrijs2005/tsheets/internal/client/customfields"
	"github.com/dmitrijs2005/tsheets/internal/client/jobcodes"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
)

// ReferenceService lists the reference data behind name resolution.
type ReferenceService interface {
	User(ctx context.Context) (models.User, error)
	// JobCodes lists the user's available job codes by full name.
	JobCodes(ctx context.Context) ([]models.JobCode, error)
	// Fields lists the active custom fields by id.
	Fields(ctx context.Context) ([]models.CustomField, error)
}

type referenceService struct {
	cache *cache.Cache
}

func NewReferenceService(refs *cache.Cache) ReferenceService {
	return &referenceService{cache: refs}
}

func (s *referenceService) User(ctx context.Context) (models.User, error) {
	return s.cache.User(ctx)
}

func (s *referenceService) JobCodes(ctx context.Context) ([]models.JobCode, error) {
	available, err := s.cache.AvailableJobCodes(ctx)
	if err != nil {
		return nil, err
	}
	return jobcodes.SortedByName(available), nil
}

func (s *referenceService) Fields(ctx context.Context) ([]models.CustomField, error) {
	fields, err := s.cache.CustomFields(ctx)
	if err != nil {
		return nil, err
	}
	return customfields.Sorted(fields), nil
}

// Package cache memoizes the slowly changing reference data of one session:
// the current user, the job-code tree, the user's available job codes and
// the custom-field definitions.
//
// Each accessor fetches on its first successful call and returns the same
// value afterwards. Failures are not remembered, so the next call retries.
// Nothing is ever invalidated or persisted. A Cache is not safe for
// concurrent use.
package cache

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tsheets/internal/client/client"
	"github.com/dmitrijs2005/tsheets/internal/client/customfields"
	"github.com/dmitrijs2005/tsheets/internal/client/jobcodes"
	"github.com/dmitrijs2005/tsheets/internal/client/models"
	"github.com/dmitrijs2005/tsheets/internal/logging"
)

type Cache struct {
	client client.Client
	log    logging.Logger

	user      *models.User
	jobCodes  map[int64]models.JobCode
	available map[int64]models.JobCode
	fields    map[int64]models.CustomField
	items     map[int64]map[int64]models.RawCustomFieldItem
}

func New(c client.Client, log logging.Logger) *Cache {
	return &Cache{
		client: c,
		log:    log,
		items:  map[int64]map[int64]models.RawCustomFieldItem{},
	}
}

func (c *Cache) User(ctx context.Context) (models.User, error) {
	if c.user != nil {
		return *c.user, nil
	}
	u, err := c.client.CurrentUser(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("fetching current user: %w", err)
	}
	c.log.Debug(ctx, "cached user", "user_id", u.ID)
	c.user = &u
	return u, nil
}

// JobCodes returns the whole named job-code tree, reading pages until the
// service reports no more.
func (c *Cache) JobCodes(ctx context.Context) (map[int64]models.JobCode, error) {
	if c.jobCodes != nil {
		return c.jobCodes, nil
	}

	raw := map[int64]models.RawJobCode{}
	for page := 1; ; page++ {
		codes, more, err := c.client.JobCodes(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetching job codes page %d: %w", page, err)
		}
		for id, code := range codes {
			raw[id] = code
		}
		if !more {
			break
		}
	}

	c.jobCodes = jobcodes.BuildTree(raw)
	c.log.Debug(ctx, "cached job codes", "count", len(c.jobCodes))
	return c.jobCodes, nil
}

// AvailableJobCodes returns the job codes assigned to the current user.
func (c *Cache) AvailableJobCodes(ctx context.Context) (map[int64]models.JobCode, error) {
	if c.available != nil {
		return c.available, nil
	}

	user, err := c.User(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := c.JobCodes(ctx)
	if err != nil {
		return nil, err
	}
	asns, err := c.client.JobCodeAssignments(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching job code assignments: %w", err)
	}

	c.available = jobcodes.Available(tree, asns)
	c.log.Debug(ctx, "cached available job codes", "count", len(c.available), "assignments", len(asns))
	return c.available, nil
}

// CustomFields returns the active custom fields with their active items.
func (c *Cache) CustomFields(ctx context.Context) (map[int64]models.CustomField, error) {
	if c.fields != nil {
		return c.fields, nil
	}

	defs, err := c.client.CustomFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching custom fields: %w", err)
	}

	items := make(map[int64]map[int64]models.RawCustomFieldItem, len(defs))
	for id, def := range defs {
		if !def.Active {
			continue
		}
		list, err := c.fieldItems(ctx, id)
		if err != nil {
			return nil, err
		}
		items[id] = list
	}

	c.fields = customfields.Build(defs, items)
	c.log.Debug(ctx, "cached custom fields", "count", len(c.fields))
	return c.fields, nil
}

func (c *Cache) fieldItems(ctx context.Context, fieldID int64) (map[int64]models.RawCustomFieldItem, error) {
	if list, ok := c.items[fieldID]; ok {
		return list, nil
	}
	list, err := c.client.CustomFieldItems(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("fetching items of custom field %d: %w", fieldID, err)
	}
	c.items[fieldID] = list
	return list, nil
}

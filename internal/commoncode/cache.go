package commoncode

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
)

// MissingName is returned when a (group, code) pair has no display name.
const MissingName = "-"

type codesRepository interface {
	ListAll(ctx context.Context) ([]models.CommonCode, error)
}

// Snapshot is an immutable view of the common-code tables. Lookups never see
// a partially loaded state; Reload swaps the whole snapshot at once.
type Snapshot struct {
	names map[enums.CodeGroup]map[string]string
}

// Lookup resolves the display name for a code, falling back to MissingName.
func (s *Snapshot) Lookup(group enums.CodeGroup, code string) string {
	if s == nil {
		return MissingName
	}
	if byCode, ok := s.names[group]; ok {
		if name, ok := byCode[code]; ok && name != "" {
			return name
		}
	}
	return MissingName
}

// NewSnapshot builds an immutable snapshot from loaded rows.
func NewSnapshot(rows []models.CommonCode) *Snapshot {
	names := make(map[enums.CodeGroup]map[string]string)
	for _, row := range rows {
		group := enums.CodeGroup(row.GroupName)
		if _, ok := names[group]; !ok {
			names[group] = make(map[string]string)
		}
		names[group][row.Code] = row.Name
	}
	return &Snapshot{names: names}
}

// Cache holds the current snapshot and reloads it on demand.
type Cache struct {
	repo    codesRepository
	current atomic.Pointer[Snapshot]
}

// NewCache constructs a cache and loads the initial snapshot.
func NewCache(ctx context.Context, repo codesRepository) (*Cache, error) {
	if repo == nil {
		return nil, fmt.Errorf("common-code repository required")
	}
	c := &Cache{repo: repo}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload fetches all common codes and atomically replaces the snapshot.
func (c *Cache) Reload(ctx context.Context) error {
	rows, err := c.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading common codes: %w", err)
	}
	c.current.Store(NewSnapshot(rows))
	return nil
}

// Current returns the active snapshot.
func (c *Cache) Current() *Snapshot {
	return c.current.Load()
}

// Lookup resolves against the active snapshot.
func (c *Cache) Lookup(group enums.CodeGroup, code string) string {
	return c.Current().Lookup(group, code)
}

// Package gifts manages the gift list and the reservation of its items.
// Each item is either available or reserved by exactly one guest.
package gifts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/models"
	"event-rsvp/internal/storage"
	"event-rsvp/internal/validate"
)

// Catalog owns the gift catalog document. Every operation re-reads the
// catalog before changing it and writes the full catalog back.
type Catalog struct {
	store storage.Store
	log   zerolog.Logger
	newID func() (string, error)
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithIDGenerator overrides how new item ids are produced.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(c *Catalog) { c.newID = gen }
}

func NewCatalog(store storage.Store, log zerolog.Logger, opts ...Option) *Catalog {
	c := &Catalog{
		store: store,
		log:   log.With().Str("component", "gifts").Logger(),
		newID: timeOrderedID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// timeOrderedID returns a UUIDv7, which embeds the creation time and
// increases monotonically within the process.
func timeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// List returns the catalog in display order.
func (c *Catalog) List(ctx context.Context) ([]models.GiftItem, error) {
	return storage.LoadChecked(ctx, c.store, storage.KeyGifts, SeedCatalog, usableCatalog, c.log)
}

// usableCatalog rejects a decoded catalog with no list at all. An empty
// list is kept: the admin may have removed every item.
func usableCatalog(items []models.GiftItem) bool {
	return items != nil
}

// Get returns a single item.
func (c *Catalog) Get(ctx context.Context, itemID string) (models.GiftItem, error) {
	items, err := c.List(ctx)
	if err != nil {
		return models.GiftItem{}, err
	}
	i := indexOf(items, itemID)
	if i < 0 {
		return models.GiftItem{}, apperr.NotFound("presente não encontrado")
	}
	return items[i], nil
}

// ReservedBy returns the items currently reserved under name.
func (c *Catalog) ReservedBy(ctx context.Context, name string) ([]models.GiftItem, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.GiftItem
	for _, it := range items {
		if it.IsReserved && it.ReservedBy == name {
			out = append(out, it)
		}
	}
	return out, nil
}

// Reserve claims an available item for guest. Without a guest it does
// nothing; a guest without a name is rejected. An item that is already reserved, even by the same guest, is a
// conflict and is left untouched.
func (c *Catalog) Reserve(ctx context.Context, itemID string, guest *models.GuestIdentity) error {
	if guest == nil {
		c.log.Debug().Str("item", itemID).Msg("Reservation ignored without guest identity")
		return nil
	}
	if strings.TrimSpace(guest.Name) == "" {
		return apperr.Validation("name", "campo obrigatório")
	}
	return c.mutate(ctx, func(items []models.GiftItem) ([]models.GiftItem, error) {
		i := indexOf(items, itemID)
		if i < 0 {
			return nil, apperr.NotFound("presente não encontrado")
		}
		if !items[i].Available() {
			return nil, apperr.Conflict("este presente já foi reservado")
		}
		items[i].IsReserved = true
		items[i].ReservedBy = guest.Name
		c.log.Info().Str("item", itemID).Str("guest", guest.Contact).Msg("Gift reserved")
		return items, nil
	})
}

// Cancel releases an item whatever its holder. Releasing an available item
// is a no-op.
func (c *Catalog) Cancel(ctx context.Context, itemID string) error {
	return c.release(ctx, itemID, nil)
}

// CancelAs releases an item on behalf of guest, who must be its holder.
func (c *Catalog) CancelAs(ctx context.Context, itemID string, guest *models.GuestIdentity) error {
	if guest == nil {
		return apperr.Authorization("identifique-se para cancelar uma reserva")
	}
	return c.release(ctx, itemID, guest)
}

func (c *Catalog) release(ctx context.Context, itemID string, owner *models.GuestIdentity) error {
	return c.mutate(ctx, func(items []models.GiftItem) ([]models.GiftItem, error) {
		i := indexOf(items, itemID)
		if i < 0 {
			return nil, apperr.NotFound("presente não encontrado")
		}
		if items[i].Available() {
			return nil, errNoChange
		}
		if owner != nil && items[i].ReservedBy != owner.Name {
			return nil, apperr.Authorization("somente quem reservou pode cancelar")
		}
		items[i].IsReserved = false
		items[i].ReservedBy = ""
		c.log.Info().Str("item", itemID).Bool("admin", owner == nil).Msg("Reservation cancelled")
		return items, nil
	})
}

// AddItem validates req and appends a new available item.
func (c *Catalog) AddItem(ctx context.Context, req models.NewGiftRequest) (models.GiftItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	req.Link = strings.TrimSpace(req.Link)
	if err := validate.Struct(req); err != nil {
		return models.GiftItem{}, err
	}

	var added models.GiftItem
	err := c.mutate(ctx, func(items []models.GiftItem) ([]models.GiftItem, error) {
		id, err := c.uniqueID(items)
		if err != nil {
			return nil, err
		}
		added = models.GiftItem{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Link:        req.Link,
		}
		if added.ImageURL == "" {
			added.ImageURL = PlaceholderImage(id)
		}
		return append(items, added), nil
	})
	if err != nil {
		return models.GiftItem{}, err
	}
	c.log.Info().Str("item", added.ID).Str("name", added.Name).Msg("Gift added")
	return added, nil
}

// RemoveItem deletes an item regardless of its reservation.
func (c *Catalog) RemoveItem(ctx context.Context, itemID string) error {
	return c.mutate(ctx, func(items []models.GiftItem) ([]models.GiftItem, error) {
		i := indexOf(items, itemID)
		if i < 0 {
			return nil, apperr.NotFound("presente não encontrado")
		}
		c.log.Info().Str("item", itemID).Bool("was_reserved", items[i].IsReserved).Msg("Gift removed")
		return append(items[:i], items[i+1:]...), nil
	})
}

func (c *Catalog) uniqueID(items []models.GiftItem) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		id, err := c.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate item id: %w", err)
		}
		if indexOf(items, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique item id")
}

// errNoChange tells mutate to skip the write.
var errNoChange = errors.New("no change")

func (c *Catalog) mutate(ctx context.Context, fn func([]models.GiftItem) ([]models.GiftItem, error)) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if errors.Is(err, errNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := storage.Save(ctx, c.store, storage.KeyGifts, updated); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

func indexOf(items []models.GiftItem, itemID string) int {
	for i, it := range items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

package handler

import (
	"context"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/models"
)

// Gifts lists the catalog.
func (a *App) Gifts(ctx context.Context) ([]models.GiftItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gifts.List(ctx)
}

// MyGifts lists the items reserved by the current guest.
func (a *App) MyGifts(ctx context.Context) ([]models.GiftItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Guest == nil {
		return nil, nil
	}
	return a.gifts.ReservedBy(ctx, a.state.Guest.Name)
}

// ReserveGift reserves an item for the current guest. Without a guest
// identity nothing happens.
func (a *App) ReserveGift(ctx context.Context, itemID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gifts.Reserve(ctx, itemID, a.state.Guest)
}

// CancelReservation releases an item. The admin may release any item; a
// guest only the items they hold.
func (a *App) CancelReservation(ctx context.Context, itemID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.IsAdmin {
		return a.gifts.Cancel(ctx, itemID)
	}
	if a.state.Guest == nil {
		return apperr.Authorization("identifique-se para cancelar uma reserva")
	}
	return a.gifts.CancelAs(ctx, itemID, a.state.Guest)
}

// AddGift adds an item to the catalog. Admin only.
func (a *App) AddGift(ctx context.Context, req models.NewGiftRequest) (models.GiftItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireAdmin(); err != nil {
		return models.GiftItem{}, err
	}
	return a.gifts.AddItem(ctx, req)
}

// RemoveGift deletes an item from the catalog. Admin only.
func (a *App) RemoveGift(ctx context.Context, itemID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireAdmin(); err != nil {
		return err
	}
	return a.gifts.RemoveItem(ctx, itemID)
}

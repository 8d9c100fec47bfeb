package models

// GiftItem is one entry of the shared gift list.
// IsReserved is false exactly when ReservedBy is empty.
type GiftItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Link        string `json:"link,omitempty"`
	IsReserved  bool   `json:"isReserved"`
	ReservedBy  string `json:"reservedBy,omitempty"`
}

// Available reports whether the item can be reserved.
func (g GiftItem) Available() bool {
	return !g.IsReserved && g.ReservedBy == ""
}

// NewGiftRequest is the admin form for adding a gift to the catalog.
type NewGiftRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=5"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link,omitempty" validate:"omitempty,url"`
}

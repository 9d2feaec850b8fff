package models

// Category groups habits for display. Habits and categories are many-to-many.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon,omitempty"`
	Color      string `json:"color,omitempty"` // #RRGGBB
	OrderIndex int    `json:"order_index"`
}

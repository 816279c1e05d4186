package model

import "time"

// Payment types and order statuses stored on Order rows.
const (
	PaymentTypeCOD    = "cod"
	PaymentTypeStripe = "stripe"

	StatusPlaced  = "placed"
	StatusPending = "pending"
)

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null"`
	SellerID    string `gorm:"size:64;index;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string
	Category    string `gorm:"size:64;index"`
	// Prices in minor currency units. OfferPrice of 0 means no offer;
	// when positive it is the effective unit price.
	Price      int64    `gorm:"not null"`
	OfferPrice int64    `gorm:"not null;default:0"`
	Stock      int64    `gorm:"not null"`
	Images     []string `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectivePrice is the unit price charged at checkout.
func (p *Product) EffectivePrice() int64 {
	if p.OfferPrice > 0 {
		return p.OfferPrice
	}
	return p.Price
}

// CartItem is one entry of a user's server-side cart. The cart is replaced
// wholesale on every update, never patched.
type CartItem struct {
	UserID    string `gorm:"primaryKey;size:64;not null"`
	ProductID string `gorm:"primaryKey;size:64;not null"`
	Quantity  int64  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Address struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	UserID       string `gorm:"size:64;index;not null"`
	FullName     string `gorm:"size:255;not null"`
	PhoneNumber  string `gorm:"size:32;not null"`
	PostalCode   string `gorm:"size:16;not null"`
	Neighborhood string `gorm:"not null"`
	City         string `gorm:"size:128;not null"`
	State        string `gorm:"size:128;not null"`
	CreatedAt    time.Time
}

type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null"`
	UserID string `gorm:"size:64;index;not null"`
	// Total in minor units, surcharge included. Computed once at creation.
	Amount      int64  `gorm:"not null"`
	AddressID   string `gorm:"size:64;not null"`
	Status      string `gorm:"size:32;index;not null;default:placed"`
	PaymentType string `gorm:"size:16;index;not null"`
	IsPaid      bool   `gorm:"not null;default:false"`
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items   []OrderItem `gorm:"foreignKey:OrderID"`
	Address *Address    `gorm:"foreignKey:AddressID"`
}

type OrderItem struct {
	ID      uint   `gorm:"primaryKey"`
	OrderID string `gorm:"size:64;index;not null"`
	// FK → product.id
	ProductID string `gorm:"size:64;index;not null"`
	Quantity  int64  `gorm:"not null"`
	// Effective unit price captured at order time, minor units.
	UnitPrice int64 `gorm:"not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// WebhookEvent records provider notifications that were already processed so
// redeliveries become no-ops.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

package models

import (
	"time"
)

type UserRole struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	Contact      string    `json:"contact"`
	Address      string    `json:"address"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	RoleID       uint      `gorm:"not null"                 json:"role_id"`
	Role         UserRole  `gorm:"foreignKey:RoleID"        json:"role"`
	Active       bool      `gorm:"default:true"             json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `json:"description"`
	Qty         int       `gorm:"not null;default:0"       json:"qty"`
	CategoryID  uint      `gorm:"not null"                 json:"category_id"`
	Likes       int       `gorm:"not null;default:0"       json:"likes"`
	CreatedByID uint      `gorm:"index;not null"           json:"created_by_id"`
	Active      bool      `gorm:"default:true"             json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductPrice struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    uint   `gorm:"index;not null"           json:"product_id"`
	Price        int    `gorm:"not null;check:price>=0"  json:"price"`
	TimeDuration string `gorm:"not null"                 json:"time_duration"`
	Active       bool   `gorm:"default:true"             json:"active"`
}

type Status struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type InvoiceType struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Payment struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference         string    `gorm:"unique;not null"          json:"reference"`
	InvoiceTypeID     uint      `gorm:"not null"                 json:"invoice_type_id"`
	StatusID          uint      `gorm:"not null"                 json:"status_id"`
	PaymentPercentage int       `gorm:"not null;default:0"       json:"payment_percentage"`
	Active            bool      `gorm:"default:true"             json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

type Order struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint      `gorm:"not null"                 json:"product_id"`
	UserID        uint      `gorm:"index;not null"           json:"user_id"`
	PaymentID     uint      `gorm:"not null"                 json:"payment_id"`
	StatusID      uint      `gorm:"not null"                 json:"status_id"`
	TimestampFrom time.Time `gorm:"not null"                 json:"timestamp_from"`
	TimestampTo   time.Time `gorm:"not null"                 json:"timestamp_to"`
	CreatedAt     time.Time `json:"created_at"`
}

type CartItem struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID        uint      `gorm:"index;not null"              json:"user_id"`
	ProductID     uint      `gorm:"not null"                    json:"product_id"`
	Quantity      uint      `gorm:"default:1;check:quantity>0"  json:"quantity"`
	TimestampFrom time.Time `gorm:"not null"                    json:"timestamp_from"`
	TimestampTo   time.Time `gorm:"not null"                    json:"timestamp_to"`
}

type Delivery struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint       `gorm:"index;not null"           json:"order_id"`
	Address      string     `gorm:"not null"                 json:"address"`
	StatusID     uint       `gorm:"not null"                 json:"status_id"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Active       bool       `gorm:"default:true"             json:"active"`
}

type ProductLike struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                 json:"id"`
	UserID    uint `gorm:"index;not null;uniqueIndex:idx_like_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_like_user_product"       json:"product_id"`
}

type Wishlist struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                 json:"id"`
	UserID    uint `gorm:"index;not null;uniqueIndex:idx_wish_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_wish_user_product"       json:"product_id"`
}

type Notification struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint   `gorm:"index;not null"           json:"user_id"`
	ProductID uint   `gorm:"not null"                 json:"product_id"`
	Content   string `gorm:"not null"                 json:"content"`
	EmailSent bool   `gorm:"default:false"            json:"email_sent"`
	IsRead    bool   `gorm:"default:false"            json:"is_read"`
	Deleted   bool   `gorm:"default:false"            json:"deleted"`
}

type UserAccessToken struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint       `gorm:"index;not null"           json:"user_id"`
	TokenHash  string     `gorm:"unique;not null"          json:"-"`
	ExpiresAt  time.Time  `gorm:"not null"                 json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	Active     bool       `gorm:"default:true"             json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
}

package transport

import "time"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID      uint      `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AccessToken string    `json:"access_token"`
	TokenExpiry time.Time `json:"token_expiry"`
}

type ProductRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Qty          *int   `json:"qty"`
	CategoryName string `json:"category_name"`
	Active       *bool  `json:"active"`
}

type PriceRequest struct {
	Price        *int   `json:"price"`
	TimeDuration string `json:"time_duration"`
	Active       *bool  `json:"active"`
}

type CartAddRequest struct {
	ProductID     uint       `json:"product_id"`
	Quantity      uint       `json:"quantity"`
	TimestampFrom *time.Time `json:"timestamp_from"`
	TimestampTo   *time.Time `json:"timestamp_to"`
}

type CreateOrderRequest struct {
	ProductID     uint       `json:"product_id"`
	TimestampFrom *time.Time `json:"timestamp_from"`
	TimestampTo   *time.Time `json:"timestamp_to"`
}

type RescheduleRequest struct {
	TimestampFrom *time.Time `json:"timestamp_from"`
	TimestampTo   *time.Time `json:"timestamp_to"`
}

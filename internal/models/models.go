package models

import (
	"fmt"
	"time"
)

// OrderStatus is the order lifecycle state as transmitted on the wire.
type OrderStatus string

const (
	StatusPlaced     OrderStatus = "placed"
	StatusInProgress OrderStatus = "inProgress"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status in pipeline order.
var OrderStatuses = []OrderStatus{StatusPlaced, StatusInProgress, StatusDelivered, StatusCancelled}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Terminal reports whether no further transition is defined for the status.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Customer struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID            string      `json:"id"`
	Customer      Customer    `json:"customer"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMethod string      `json:"paymentMethod"` // free-form, backend defaults to "Cash"
	PaymentRef    string      `json:"paymentRef,omitempty"`
	Status        OrderStatus `json:"status"`
	RiderID       string      `json:"riderId,omitempty"`
	RiderName     string      `json:"riderName,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty"`
}

// RiderStatus mirrors the backend's rider availability states.
type RiderStatus string

const (
	RiderAvailable  RiderStatus = "available"
	RiderOnDelivery RiderStatus = "onDelivery"
	RiderOffline    RiderStatus = "offline"
)

type Rider struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	Email           string      `json:"email,omitempty"`
	VehicleType     string      `json:"vehicleType,omitempty"`
	VehicleNumber   string      `json:"vehicleNumber,omitempty"`
	Rating          float64     `json:"rating"` // 0..5, backend defaults to 5.0
	TotalDeliveries int         `json:"totalDeliveries"`
	Status          RiderStatus `json:"status"`
	JoinedAt        time.Time   `json:"joinedAt"`
}

// User is a customer account, keyed by phone number on the backend.
type User struct {
	Phone      string    `json:"phone"`
	Name       string    `json:"name,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsVerified bool      `json:"isVerified"`
	JoinedAt   time.Time `json:"joinedAt"`
}

type MenuPackage struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Day      string  `json:"day"`
	MealType string  `json:"mealType,omitempty"`
	Price    float64 `json:"price"`
}

type SingleMeal struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	IsVisible bool    `json:"isVisible"`
}

type OrderStats struct {
	Total        int     `json:"total"`
	TodayCount   int     `json:"todayCount"`
	TodayRevenue float64 `json:"todayRevenue"`
	Placed       int     `json:"placed"`
	InProgress   int     `json:"inProgress"`
	Delivered    int     `json:"delivered"`
	Cancelled    int     `json:"cancelled"`
}

type RiderStats struct {
	Total      int `json:"total"`
	Available  int `json:"available"`
	OnDelivery int `json:"onDelivery"`
	Offline    int `json:"offline"`
}

type UserStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	Verified      int `json:"verified"`
	Inactive      int `json:"inactive"`
	RecentSignups int `json:"recentSignups"`
}

// TransitionEvent is published after every successful order transition.
type TransitionEvent struct {
	OrderID   string      `json:"order_id"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	RiderID   string      `json:"rider_id,omitempty"`
	RiderName string      `json:"rider_name,omitempty"`
	Actor     string      `json:"actor,omitempty"`
	At        time.Time   `json:"at"`
}

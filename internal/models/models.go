package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
	CreatedAt   int64   `json:"createdAt"`
}

func NewBook(title, author, isbn string, price float64, category, description, imageURL string, stock int) Book {
	return Book{
		ID:          uuid.NewString(),
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		Price:       price,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
		Stock:       stock,
		CreatedAt:   time.Now().UnixMilli(),
	}
}

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	CreatedAt int64  `json:"createdAt"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

func NewUser(username, password, email, role string) User {
	return User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// CartItem snapshots title/author/price/imageUrl from the book at the moment
// it was added. AvailableStock is not a snapshot: it is overwritten from the
// live book on every cart read and write.
type CartItem struct {
	BookID         string  `json:"bookId"`
	BookTitle      string  `json:"bookTitle"`
	BookAuthor     string  `json:"bookAuthor"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	ImageURL       string  `json:"imageUrl"`
	AvailableStock int     `json:"availableStock"`
}

type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	UpdatedAt int64      `json:"updatedAt"`
}

func NewCart(userID string) Cart {
	return Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     []CartItem{},
		UpdatedAt: time.Now().UnixMilli(),
	}
}

// TotalAmount is derived on demand, never stored.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

type OrderItem struct {
	BookID     string  `json:"bookId"`
	BookTitle  string  `json:"bookTitle"`
	BookAuthor string  `json:"bookAuthor"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

func NewOrderItem(bookID, bookTitle, bookAuthor string, price float64, quantity int) OrderItem {
	return OrderItem{
		BookID:     bookID,
		BookTitle:  bookTitle,
		BookAuthor: bookAuthor,
		Price:      price,
		Quantity:   quantity,
		Subtotal:   price * float64(quantity),
	}
}

const OrderStatusPending = "pending"

// Order is immutable after creation except for Status. Items and TotalAmount
// are frozen at checkout; later price changes never touch them.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	Phone           string      `json:"phone"`
	CreatedAt       int64       `json:"createdAt"`
}

func NewOrder(userID string, items []OrderItem, totalAmount float64, shippingAddress, phone string) Order {
	return Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     totalAmount,
		Status:          OrderStatusPending,
		ShippingAddress: shippingAddress,
		Phone:           phone,
		CreatedAt:       time.Now().UnixMilli(),
	}
}

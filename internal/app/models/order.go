package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderItem struct {
	ID            string  `bson:"_id" json:"_id"`
	Collection    string  `bson:"collection" json:"collection"`
	Name          string  `bson:"name" json:"name"`
	SellingPrice  float64 `bson:"sellingPrice" json:"sellingPrice"`
	ItemTotal     float64 `bson:"itemTotal" json:"itemTotal"`
	Orders        int     `bson:"orders" json:"orders"`
	Category      string  `bson:"category" json:"category"`
	PublishedDate string  `bson:"publishedDate" json:"publishedDate"`
	Status        string  `bson:"status" json:"status"`
	Type          string  `bson:"type" json:"type"`
	Discount      float64 `bson:"discount" json:"discount"`
	Quantity      int     `bson:"quantity" json:"quantity"`
}

type CompanySnapshot struct {
	ID          string `bson:"_id" json:"_id"`
	DisplayName string `bson:"displayName" json:"displayName"`
	Phone       string `bson:"phone" json:"phone"`
	Email       string `bson:"email" json:"email"`
	Logo        string `bson:"logo,omitempty" json:"logo,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
}

// Order is the billing record derived from a booking. InvoiceID equals the
// booking's BookingID.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	InvoiceID     string             `bson:"invoiceId" json:"invoiceId"`
	User          PartySnapshot      `bson:"user" json:"user"`
	Address       Address            `bson:"address" json:"address"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Payment       []PaymentRecord    `bson:"payment" json:"payment"`
	Company       CompanySnapshot    `bson:"company" json:"company"`
	Type          string             `bson:"type" json:"type"`
	Title         string             `bson:"title" json:"title"`
	Notes         string             `bson:"notes" json:"notes"`
	AutoGenerated bool               `bson:"autoGenerated" json:"autoGenerated"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	TotalPaid     float64            `bson:"totalPaid" json:"totalPaid"`
	DueAmount     float64            `bson:"dueAmount" json:"dueAmount"`
	Discount      float64            `bson:"discount" json:"discount"`
	Status        string             `bson:"status" json:"status"`
	Download      []string           `bson:"download,omitempty" json:"download,omitempty"`
	CreatedBy     PartySnapshot      `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package models

import "time"

type Review struct {
	ID               string    `json:"id"`
	ProductID        int       `json:"productId"`
	UserID           int       `json:"userId"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Comment          string    `json:"comment"`
	VerifiedPurchase bool      `json:"verifiedPurchase"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

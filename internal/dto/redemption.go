package dto

import "time"

// RedeemRequest identifies the product being redeemed.
type RedeemRequest struct {
	ProductID string `json:"productID" binding:"required"`
}

// RedemptionResult reports the outcome of a successful redemption.
type RedemptionResult struct {
	ProductID   string    `json:"productID"`
	ProductName string    `json:"productName"`
	PointsSpent int64     `json:"pointsSpent"`
	NewBalance  int64     `json:"newBalance"`
	ActivityID  string    `json:"activityID"`
	RedeemedAt  time.Time `json:"redeemedAt"`
}

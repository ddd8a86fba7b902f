package domain

type OrderStatus string

const (
	OrderStatusPendingApproval    OrderStatus = "PENDING_APPROVAL"
	OrderStatusApprovedPayPending OrderStatus = "APPROVED_PAY_PENDING"
	OrderStatusInEscrow           OrderStatus = "IN_ESCROW"
	OrderStatusCompleted          OrderStatus = "COMPLETED"
	OrderStatusCancelled          OrderStatus = "CANCELLED"
)

// Order coordinates a transaction between a buyer and a seller.
// Amount invariant: TotalAmount = OwnerAmount + PlatformFee, with all three
// recomputed server-side from the item's price at creation time.
type Order struct {
	ID              int32       `json:"id"`
	BuyerID         int32       `json:"buyer_id"`
	SellerID        int32       `json:"seller_id"`
	ItemID          int32       `json:"item_id"`
	Item            *Item       `json:"item,omitempty"`
	Buyer           *PublicProfile `json:"buyer,omitempty"`
	Seller          *PublicProfile `json:"seller,omitempty"`
	Status          OrderStatus `json:"status"`
	TotalAmount     int32       `json:"total_amount"`
	PlatformFee     int32       `json:"platform_fee"`
	OwnerAmount     int32       `json:"owner_amount"`
	StartDate       *string     `json:"start_date,omitempty"` // rentals only, yyyy-mm-dd
	DurationDays    int32       `json:"duration_days"`
	BuyerConfirmed  bool        `json:"buyer_confirmed"`
	SellerConfirmed bool        `json:"seller_confirmed"`
	IsReviewed      bool        `json:"is_reviewed"`
	CreatedOn       string      `json:"created_on"`
	UpdatedOn       string      `json:"updated_on"`
}

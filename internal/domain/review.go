package domain

// Review is one-to-one with a completed order, enforced by a unique
// constraint on order_id in the store.
type Review struct {
	ID           int32  `json:"id"`
	OrderID      int32  `json:"order_id"`
	TargetUserID int32  `json:"target_user_id"`
	Rating       int32  `json:"rating"` // 1..5
	Comment      string `json:"comment"`
	CreatedOn    string `json:"created_on"`
}

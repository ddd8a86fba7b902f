package domain

import "time"

type OTPPurpose string

const (
	OTPPurposeVerify OTPPurpose = "VERIFY" // identity verification
	OTPPurposeBank   OTPPurpose = "BANK"   // deposit authorization
)

// OTPCode is a time-bounded, single-use code record. Consumption is a
// conditional update so a code can never be redeemed twice.
type OTPCode struct {
	ID         int32      `json:"id"`
	Mobile     string     `json:"mobile"`
	Code       string     `json:"-"`
	Purpose    OTPPurpose `json:"purpose"`
	UserID     *int32     `json:"user_id,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedOn  time.Time  `json:"created_on"`
}

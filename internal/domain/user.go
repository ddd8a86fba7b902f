package domain

type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "UNVERIFIED"
	VerificationStatusPending    VerificationStatus = "PENDING"
	VerificationStatusApproved   VerificationStatus = "APPROVED"
	VerificationStatusRejected   VerificationStatus = "REJECTED"
)

type User struct {
	ID                 int32              `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	MobileNumber       string             `json:"mobile_number"`
	IsVerified         bool               `json:"is_verified"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	SelfieURL          string             `json:"selfie_url,omitempty"`
	IDProofURL         string             `json:"id_proof_url,omitempty"`
	RatingSum          int32              `json:"rating_sum"`
	RatingCount        int32              `json:"rating_count"`
	AvgRating          float64            `json:"avg_rating"`
	WalletBalance      int32              `json:"wallet_balance"`
	IsAdmin            bool               `json:"is_admin"`
	CreatedOn          string             `json:"created_on"`
	UpdatedOn          string             `json:"updated_on"`
}

// PublicProfile is the subset of user fields embedded in catalog listings.
type PublicProfile struct {
	ID         int32   `json:"id"`
	Name       string  `json:"name"`
	IsVerified bool    `json:"is_verified"`
	AvgRating  float64 `json:"avg_rating"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		Name:       u.Name,
		IsVerified: u.IsVerified,
		AvgRating:  u.AvgRating,
	}
}

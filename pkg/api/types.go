package api

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type Organization struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	SubscriptionStatus string `json:"subscription_status"`
	CreatedBy          string `json:"created_by"`
	CreatedAt          string `json:"created_at"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

// CheckoutRequest is the wire form of a checkout request. The backend calls
// plans "packages".
type CheckoutRequest struct {
	PackageID string `json:"package_id"`
	OrgID     string `json:"org_id"`
}

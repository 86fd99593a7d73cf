package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// PromoValidationResponse is the legacy wire shape of the promo endpoint.
// Business-rule rejections ride a 200 with success=false; only malformed
// input and unexpected failures map to HTTP error statuses.
type PromoValidationResponse struct {
	Success   bool     `json:"success"`
	PromoCode any      `json:"promoCode,omitempty"`
	Discount  *float64 `json:"discount,omitempty"`
	Error     string   `json:"error,omitempty"`
}

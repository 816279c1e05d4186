package dto

type Item struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

type CreateOrderRequest struct {
	Address string  `json:"address"`
	Items   []*Item `json:"items"`
}

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

type StripeOrderResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type UpdateCartRequest struct {
	CartData map[string]int64 `json:"cartData"`
}

type AddAddressRequest struct {
	Address *AddressPayload `json:"address"`
}

type AddressPayload struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	PostalCode   string `json:"postalCode"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

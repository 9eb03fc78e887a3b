package model

// Customer is a billable party that owns invoices.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	CityID  string `json:"city_id"`
}

// CustomerRequest is the create/update payload for a customer.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	CityID  string `json:"city_id"`
}

// City is a reference-data entry used by customer addresses.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CityRequest is the create/update payload for a city.
type CityRequest struct {
	Name string `json:"name" validate:"required"`
}

// Brand groups products.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrandRequest is the create/update payload for a brand.
type BrandRequest struct {
	Name string `json:"name" validate:"required"`
}

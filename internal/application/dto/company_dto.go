package dto

import "time"

// CreateCompanyRequest alta de empresa/tenant.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required"`
	NIT      string `json:"nit" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Currency string `json:"currency"` // por defecto COP
}

// CompanyListResponse página de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CompanyResponse empresa persistida.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NIT       string    `json:"nit"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

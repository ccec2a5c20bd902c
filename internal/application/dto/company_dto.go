package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	NIF          string `json:"nif" validate:"required,min=1,max=32"`
	Sector       string `json:"sector" validate:"max=120"`
	SizeRange    string `json:"size_range" validate:"max=60"`
	Country      string `json:"country" validate:"max=80"`
	ContactName  string `json:"contact_name" validate:"max=200"`
	ContactRole  string `json:"contact_role" validate:"max=120"`
	ContactPhone string `json:"contact_phone" validate:"max=40"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
// El estado comercial no es editable: solo cambia con la decisión del diagnóstico.
type UpdateCompanyRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	NIF          *string `json:"nif" validate:"omitempty,min=1,max=32"`
	Sector       *string `json:"sector" validate:"omitempty,max=120"`
	SizeRange    *string `json:"size_range" validate:"omitempty,max=60"`
	Country      *string `json:"country" validate:"omitempty,max=80"`
	ContactName  *string `json:"contact_name" validate:"omitempty,max=200"`
	ContactRole  *string `json:"contact_role" validate:"omitempty,max=120"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=40"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
}

// CompanyListRequest filtros de GET /api/companies.
type CompanyListRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=lead apta descartada"`
	Search string `query:"search" validate:"max=200"`
	PageRequest
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	NIF          string    `json:"nif"`
	Sector       string    `json:"sector"`
	SizeRange    string    `json:"size_range"`
	Country      string    `json:"country"`
	ContactName  string    `json:"contact_name"`
	ContactRole  string    `json:"contact_role"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Status       string    `json:"status"`
	IntakeStatus string    `json:"intake_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LeadImportResponse resultado de una importación masiva de leads.
type LeadImportResponse struct {
	Created    []string `json:"created"`    // NIF de las empresas dadas de alta
	Duplicates []string `json:"duplicates"` // NIF ya existentes (se omiten)
	Failed     []string `json:"failed"`
}

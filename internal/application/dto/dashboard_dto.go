package dto

// ClientDashboardResponse panel del cliente. Sin empresa vinculada solo se rellenan
// Status ("sin_empresa"), Title y Message.
type ClientDashboardResponse struct {
	Status  string                  `json:"status"` // sin_empresa, en_evaluacion, apta, no_apta
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Company *DashboardCompanySummary `json:"company,omitempty"`
	Intake  *IntakeResponse         `json:"intake,omitempty"`
	Project *ProjectResponse        `json:"project,omitempty"`
}

// DashboardCompanySummary datos de la empresa visibles para el cliente.
type DashboardCompanySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NIF          string `json:"nif"`
	Sector       string `json:"sector"`
	Status       string `json:"status"`
	IntakeStatus string `json:"intake_status"`
}

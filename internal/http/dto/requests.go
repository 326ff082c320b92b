package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type CreateEntryRequest struct {
	ProjectID   int64   `json:"project_id"`
	EntryDate   string  `json:"entry_date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

type UpdateEntryRequest struct {
	ProjectID   *int64   `json:"project_id"`
	EntryDate   *string  `json:"entry_date"`
	Hours       *float64 `json:"hours"`
	Description *string  `json:"description"`
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}

type CreateUserRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
	ManagerID  *int64  `json:"manager_id"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	ManagerID  *int64  `json:"manager_id"`
	Status     *string `json:"status"`
	// ClearManager removes the manager reference; a null manager_id
	// alone means "leave unchanged".
	ClearManager bool `json:"clear_manager"`
}

type CreateProjectRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	BillingRate float64 `json:"billing_rate"`
	AssignedTo  []int64 `json:"assigned_to"`
}

type UpdateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	BillingRate *float64 `json:"billing_rate"`
	Status      *string  `json:"status"`
	AssignedTo  []int64  `json:"assigned_to"`
}

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

package dto

// RegisterStudentRequest creates a student record
type RegisterStudentRequest struct {
	Name         string `json:"name" binding:"required,max=100" example:"Ada"`
	Surname      string `json:"surname" binding:"required,max=100" example:"Lovelace"`
	DepartmentID *int64 `json:"departmentId" binding:"omitempty,gt=0" example:"1"`
}

// StudentStatusRequest locks or reopens a student's selection
type StudentStatusRequest struct {
	Editable *bool `json:"editable" binding:"required" example:"true"`
}

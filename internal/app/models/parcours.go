package models

// Parcours is a study track of a department
type Parcours struct {
	ID            int64   `json:"id" db:"id"`
	DepartmentID  int64   `json:"departmentId" db:"department_id"`
	Name          string  `json:"name" db:"name"`
	Description   *string `json:"description,omitempty" db:"description"`
	MandatoryText *string `json:"mandatoryText,omitempty" db:"mandatory_text"`
	ElectiveText  *string `json:"electiveText,omitempty" db:"elective_text"`
	// BaseECTS and AcademicBaseECTS are credits granted outside course choices
	BaseECTS         float64 `json:"baseEcts" db:"base_ects"`
	AcademicBaseECTS float64 `json:"academicBaseEcts" db:"academic_base_ects"`
}

// GrantedECTS returns the credits every student of the parcours starts with
func (p *Parcours) GrantedECTS() float64 {
	if p == nil {
		return 0
	}
	return p.BaseECTS + p.AcademicBaseECTS
}

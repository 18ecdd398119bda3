package accounting

import (
	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// EmployeeService lists and retrieves employees.
type EmployeeService struct {
	readService[Employee, ListParams]
}

// NewEmployeeService applies opts to each request, after the client's.
func NewEmployeeService(opts ...RequestOption) EmployeeService {
	return EmployeeService{readService[Employee, ListParams]{Options: opts, path: "employees"}}
}

// Employee is a person employed by the company.
type Employee struct {
	codec.Extras
	Record
	EmployeeNumber nullable.Nullable[string]             `json:"employee_number,omitempty"`
	Company        codec.Expandable[CompanyInfo]         `json:"company,omitempty"`
	FirstName      nullable.Nullable[string]             `json:"first_name,omitempty"`
	LastName       nullable.Nullable[string]             `json:"last_name,omitempty"`
	IsContractor   nullable.Nullable[bool]               `json:"is_contractor,omitempty"`
	EmployeeEmail  nullable.Nullable[string]             `json:"employee_email,omitempty"`
	Status         nullable.Nullable[EmployeeStatusEnum] `json:"status,omitempty"`
}

func (r Employee) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Employee) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// FullName joins the first and last name, skipping unset parts.
func (r Employee) FullName() string {
	first, _ := r.FirstName.Get()
	last, _ := r.LastName.Get()
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

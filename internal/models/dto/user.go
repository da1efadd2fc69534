package dto

// UserPatch lists the fields PUT /users/{id} may change. ID and password can
// never travel through this path; pointers distinguish "absent" from "zero".
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Surname  *string `json:"surname,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Disabled *bool   `json:"disabled,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Surname == nil && p.Username == nil &&
		p.Email == nil && p.Age == nil && p.Disabled == nil
}

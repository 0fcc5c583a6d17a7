package packets

// CreateUserRequest is the body of POST /api/users. The password is hashed
// before it reaches the store.
type CreateUserRequest struct {
	FirstName    string `json:"firstName" validate:"required" msg:"First name field is required"`
	LastName     string `json:"lastName" validate:"required" msg:"Last name field is required"`
	EmailAddress string `json:"emailAddress" validate:"required" msg:"A valid Email address field is required"`
	Password     string `json:"password" validate:"required" msg:"Password field is required"`
}

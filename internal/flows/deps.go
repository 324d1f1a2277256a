package flows

// FieldError mirrors the validation collaborator's (field, message) pair
// without importing the host package.
type FieldError struct {
	Field   string
	Message string
}

// Principal is the flow-local slice of the credential record. Kind values
// match the host package's PrincipalKind.
type Principal struct {
	ID    string
	Kind  uint8
	Email string
	Name  string
}

// Deps groups flow dependency sets. The root manager builds this once and
// delegates request methods to the matching flow implementation.
type Deps struct {
	Login  LoginDeps
	Signup SignupDeps
	Logout LogoutDeps
	Reset  ResetDeps
}

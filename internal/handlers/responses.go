package handlers

import "fmt"

// Response messages kept identical to the long-standing API contract.
const (
	msgInvalidEndpoint  = "Invalid endpoint."
	msgMethodNotAllowed = "Method not allowed for this resource."
	msgServerError      = "An unexpected issue occurred on the server. Please try again later."

	msgUserNotFound  = "User not found."
	msgUserCreated   = "User created successfully."
	msgUserUpdated   = "User updated successfully."
	msgNoInput       = "No input data provided."
	msgEmailTaken    = "This email is already registered."
	msgNameTaken     = "This name is already taken."
	msgHashingFailed = "Password processing failed. Please try again."
	msgCreateFailed  = "User creation failed due to an unexpected server issue."
	msgUpdateFailed  = "User update failed due to an unexpected server issue."

	msgEmailInUse = "The provided email is already in use by another user."
	msgNameInUse  = "Name already exists for another user"

	msgNameTooShort   = "Name must be at least 2 characters long."
	msgBadEmail       = "Invalid email format provided."
	msgBadEmailIfSet  = "Invalid email format if provided."
	msgNameIfSet      = "Name must be a non-empty string if provided."
	msgUpdateNoFields = "At least 'name' or 'email' must be provided for update."

	msgPasswordShort   = "Password must be at least 8 characters long."
	msgPasswordUpper   = "Password must contain at least one uppercase letter."
	msgPasswordLower   = "Password must contain at least one lowercase letter."
	msgPasswordDigit   = "Password must contain at least one number."
	msgSearchQueryMiss = "Search query 'name' parameter is required and must not be empty."
	msgSearchNoResults = "No users found matching your criteria."
	msgLoginOK         = "Login successful."
	msgBadCredentials  = "Invalid email or password."
)

func msgUserDeleted(id int) string {
	return fmt.Sprintf("User with ID %d deleted successfully.", id)
}

func msgMissingFields(fields []string) string {
	out := "Missing required fields: "
	for i, f := range fields {
		if i > 0 {
			out += ", "
		}
		out += f
	}
	return out
}

func toString(v any) string {
	return fmt.Sprintf("%v", v)
}

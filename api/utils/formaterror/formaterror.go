package formaterror

import "strings"

// FormatError maps low-level database errors onto the field-keyed error
// maps the handlers return. Both the Postgres ("duplicate key value
// violates unique constraint \"users_username_key\"") and SQLite
// ("UNIQUE constraint failed: users.username") message shapes are
// recognized, since tests run on SQLite.
func FormatError(err string) map[string]string {
	errMap := make(map[string]string)

	switch {
	case strings.Contains(err, "username"):
		errMap["Taken_username"] = "Username Already Taken"
	case strings.Contains(err, "email"):
		errMap["Taken_email"] = "Email Already Taken"
	case strings.Contains(err, "title"):
		errMap["Taken_title"] = "This author already has a book with that title"
	case strings.Contains(err, "follower_id"):
		errMap["Duplicate_follow"] = "Already following user"
	case strings.Contains(err, "hashedPassword"), strings.Contains(err, "crypto/bcrypt"):
		errMap["Incorrect_password"] = "Incorrect Password"
	case strings.Contains(err, "record not found"):
		errMap["No_record"] = "Record Not Found"
	default:
		errMap["Incorrect_details"] = "Incorrect Details"
	}
	return errMap
}

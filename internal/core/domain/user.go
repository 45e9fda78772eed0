package domain

// User is the authenticated staff member performing check-ins. The session
// token carries nothing beyond the name.
type User struct {
	Name string `json:"name"`
}

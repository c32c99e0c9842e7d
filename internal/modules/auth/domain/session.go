package domain

// Session is the authenticated identity bound to a client connection. It is
// only built after the provider confirms email ownership (signup OTC) or
// valid credentials on a confirmed account (sign-in).
type Session struct {
	UserID                string `json:"user_id"`
	Email                 string `json:"email"`
	Role                  string `json:"role"`
	Name                  string `json:"name"`
	Department            string `json:"department"`
	HasSelectedDataSource bool   `json:"has_selected_data_source"`
}

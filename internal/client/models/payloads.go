package models

// LoginData is the body of a successful login.
type LoginData struct {
	Token    string   `json:"token"`
	UserData UserData `json:"user_data"`
}

// AccountData is returned by the admin endpoints that create or reset an
// account; user_data carries the generated password.
type AccountData struct {
	Message  string   `json:"message"`
	UserData UserData `json:"user_data"`
}

// MessageData is the body of endpoints that only report a message.
type MessageData struct {
	Message string `json:"message"`
}

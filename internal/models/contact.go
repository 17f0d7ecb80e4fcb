package models

// ContactMessage is a contact form submission handed to the mailer. It is
// never persisted.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Number  string `json:"number"`
	Message string `json:"message"`
}

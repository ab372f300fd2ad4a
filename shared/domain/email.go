package domain

// EmailMessage is constructed per notification event and never persisted.
type EmailMessage struct {
	Recipient Email
	Subject   string
	HTMLBody  string
	TextBody  string
}

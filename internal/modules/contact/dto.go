package contact

type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

type SubmitResult struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	EmailSent bool   `json:"email_sent"`
	Note      string `json:"note,omitempty"`
}

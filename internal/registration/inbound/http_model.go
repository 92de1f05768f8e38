package inbound

type SendEmailsResponse struct {
	BatchID string `json:"batch_id"`
	Total   int    `json:"total"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`

	message string
}

func (r SendEmailsResponse) Message() string {
	return r.message
}

type SendEmailRequest struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

type SendEmailResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

func (SendEmailResponse) Message() string {
	return "Email sent"
}

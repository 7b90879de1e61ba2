package types

// IngestRequest is the body of POST /orgs/{orgID}/updates.
type IngestRequest struct {
	Text   string `json:"text" validate:"required" example:"Backend is blocked by api team. Launch Friday."`
	Source string `json:"source" validate:"max=255" example:"Standup notes"`
}

// AskRequest is the body of POST /orgs/{orgID}/ask.
type AskRequest struct {
	Question string `json:"question" validate:"required,max=1000" example:"What changed today?"`
}

package models

// Student is a record owned by the account that created it.
type Student struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Branch     string  `json:"branch"`
	Percentage float32 `json:"percentage"`
	ResumeID   *int64  `json:"resumeId,omitempty"`
	UserID     *string `json:"userId,omitempty"`
}

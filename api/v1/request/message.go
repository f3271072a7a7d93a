package request

// ComposeRequest carries no author field on purpose: authorship always
// comes from the session, so a spoofed user_id in the body is ignored.
type ComposeRequest struct {
	Text string `json:"text" binding:"required,max=140"`
}

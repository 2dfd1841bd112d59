package handler

// The API speaks one envelope: {"success": true, ...} on the happy path. The
// error side of the envelope lives in the central HTTP error handler.

// envelope is the base success wrapper; handlers embed extra fields through
// the typed response structs below.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok() envelope {
	return envelope{Success: true}
}

func okMsg(message string) envelope {
	return envelope{Success: true, Message: message}
}

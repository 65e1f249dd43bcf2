package common

const (
	// MaxRegistrationBody limits multipart bodies for the registration endpoint.
	// Five images at 5 MB each plus form fields.
	MaxRegistrationBody = 26 << 20
	// MaxJSONRequestBody limits JSON request bodies for auth and search endpoints.
	MaxJSONRequestBody = 1 << 20
)

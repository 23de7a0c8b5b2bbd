/*
Package authsdk is a Go client for the Recipe Generator API.

# SDKClient vs Session

SDKClient covers the public endpoints: registration, login and the health
probes. Logging in yields a Session, which carries the bearer token and
exposes the protected endpoints:

	client := authsdk.NewSDKClient("http://localhost:5000")

	_, err := client.Register(ctx, authsdk.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@x.io",
		Password: "secret1",
	})

	session, err := client.AuthenticateWithPassword(ctx, "ana@x.io", "secret1")
	me, err := session.Me(ctx)

	recipe, err := session.GenerateRecipe(ctx, "eggs, spinach", "en")

Tokens live for 24 hours and cannot be refreshed; log in again once a call
fails with 401.

# Error Handling

Every non-2xx response becomes an *APIError holding the status code and the
server's {"error": "..."} message:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		fmt.Println(apiErr.Message) // "Invalid credentials"
	}

# Thread Safety

SDKClient and Session hold no mutable state after construction and are safe
for concurrent use.
*/
package authsdk

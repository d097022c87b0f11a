package v1

// Version of the docsign REST API
const Version = "1.0.0"

// BasePath is the route prefix of every v1 endpoint
const BasePath = "/api/v1/docsign"

package common

// AuthorizationHeaderName is the HTTP header carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only authorization scheme the server understands.
const BearerScheme = "Bearer"

package middlewares

const (
	// gin context keys set by the middleware chain
	CtxRequestID = "request_id"
	CtxUser      = "auth.user"
	CtxToken     = "auth.token"
)

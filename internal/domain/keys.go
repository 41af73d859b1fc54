package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyPrincipal CtxKey = "Principal"
	KeyRequestID CtxKey = "RequestID"
)

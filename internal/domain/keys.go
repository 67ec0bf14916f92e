package domain

type CtxKey string

const (
	KeyAccountID CtxKey = "AccountID"
	KeyAccount   CtxKey = "Account"
	KeyPrincipal CtxKey = "Principal"
	KeyToken     CtxKey = "Token"
)

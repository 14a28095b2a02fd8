package api

import (
	"context"
	"errors"
)

type keyType string

const (
	claimsKey keyType = "claims"
)

// ctxWithClaims adds verified token claims to the context
func ctxWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves verified token claims from the context
func ctxGetClaims(ctx context.Context) (*Claims, error) {
	ctxValue := ctx.Value(claimsKey)
	if ctxValue == nil {
		return nil, errors.New("claims not found in context")
	}
	claims, ok := ctxValue.(*Claims)
	if !ok {
		return nil, errors.New("value is not of type `*Claims`")
	}
	return claims, nil
}

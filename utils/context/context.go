package context

import (
	"context"

	"github.com/findahub/accounts/constant"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func WithUserID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, constant.UserIDKey, id)
}

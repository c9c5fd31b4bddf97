package utils

import (
	"context"

	"insurance-system/pkg/contextkeys"
	apperrors "insurance-system/pkg/errors"
)

// GetUserIDFromCtx достаёт UserID, положенный auth-middleware.
func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(int)
	if !ok || userID <= 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return uint64(userID), nil
}

package middleware

import (
	"context"
	"net/http"
	dto "slot_backend/internal/api/dto/slot"
	"slot_backend/pkg/resp"
	"slot_backend/pkg/token"
	"strings"

	"go.uber.org/zap"
)

type ctxKey struct{}

// Auth пропускает запрос только с валидным Bearer токеном.
// ID пользователя берется из subject и кладется в контекст
func Auth(secretKey []byte, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				resp.WriteJSONResponse(w, http.StatusUnauthorized, dto.ErrorResponse{Error: dto.KindUnauthorized})
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				logger.Debug("token rejected", zap.String("path", r.URL.Path), zap.Error(err))
				resp.WriteJSONResponse(w, http.StatusUnauthorized, dto.ErrorResponse{Error: dto.KindUnauthorized})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext - ID пользователя, положенный Auth. Пустая строка, если его нет
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(ctxKey{}).(string)
	return userID
}

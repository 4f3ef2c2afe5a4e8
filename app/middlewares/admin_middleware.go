package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/unrolled/render"
)

// AdminAuthMiddleware answers 401 unless the session belongs to an admin.
// The loaded user is stored under helpers.ContextKeyUser.
func AdminAuthMiddleware(userRepo repositories.UserRepositoryImpl, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := helpers.UserIDFromContext(r)
			if userID == "" {
				helpers.RespondError(rnd, w, r, apperror.NewUnauthorized("Bạn cần đăng nhập bằng tài khoản quản trị."))
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				helpers.RespondError(rnd, w, r, err)
				return
			}
			if user == nil {
				log.Printf("AdminAuthMiddleware: session user %s no longer exists", userID)
				helpers.RespondError(rnd, w, r, apperror.NewUnauthorized("Phiên đăng nhập không hợp lệ."))
				return
			}
			if !user.IsAdmin() {
				log.Printf("AdminAuthMiddleware: user %s (%s) is not an admin", user.ID, user.Email)
				helpers.RespondError(rnd, w, r, apperror.NewUnauthorized("Bạn không có quyền truy cập khu vực quản trị."))
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

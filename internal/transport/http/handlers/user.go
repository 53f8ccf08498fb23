package handlers

import (
	"context"
	"net/http"

	"github.com/hartantowib/account-service/internal/domain"
	"github.com/hartantowib/account-service/internal/service"
	"github.com/hartantowib/account-service/internal/transport/http/dto"
	"github.com/hartantowib/account-service/internal/transport/http/middleware"
	"github.com/hartantowib/account-service/internal/transport/http/response"
)

// Profiler is the biodata workflow surface the HTTP layer depends on.
type Profiler interface {
	CreateBiodata(ctx context.Context, user *domain.User, req dto.BiodataRequest) (*dto.BiodataResponse, error)
	GetBiodata(ctx context.Context, user *domain.User) (*dto.BiodataResponse, error)
	UpdateBiodata(ctx context.Context, user *domain.User, req dto.BiodataRequest) (*dto.BiodataResponse, error)
	UploadAvatar(ctx context.Context, user *domain.User, upload service.AvatarUpload) (*dto.BiodataResponse, error)
}

// UserHandler exposes biodata CRUD and avatar upload over HTTP. Every route
// sits behind RequireUser, so the context user is always present.
type UserHandler struct {
	users Profiler
}

func NewUserHandler(users Profiler) *UserHandler {
	return &UserHandler{users: users}
}

// CreateBiodata handles POST /api/user.
func (h *UserHandler) CreateBiodata(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, domain.ErrUnauthorized())
		return
	}
	var req dto.BiodataRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	bio, err := h.users.CreateBiodata(r.Context(), user, req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Created(w, bio)
}

// GetBiodata handles GET /api/user.
func (h *UserHandler) GetBiodata(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, domain.ErrUnauthorized())
		return
	}
	bio, err := h.users.GetBiodata(r.Context(), user)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.OK(w, bio)
}

// UpdateBiodata handles PATCH /api/user.
func (h *UserHandler) UpdateBiodata(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, domain.ErrUnauthorized())
		return
	}
	var req dto.BiodataRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	bio, err := h.users.UpdateBiodata(r.Context(), user, req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.OK(w, bio)
}

// UploadAvatar handles PATCH /api/user/avatar with a multipart "avatar" field.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, domain.ErrUnauthorized())
		return
	}

	// Hard cap on the whole request body before parsing the form.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxAvatarSize+1024)

	if err := r.ParseMultipartForm(service.MaxAvatarSize); err != nil {
		response.WriteError(w, domain.ErrAvatarTooLarge(service.MaxAvatarSize))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.WriteError(w, domain.ErrInvalidBody(err))
		return
	}
	defer file.Close()

	upload := service.AvatarUpload{
		Data:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}
	bio, err := h.users.UploadAvatar(r.Context(), user, upload)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.OK(w, bio)
}

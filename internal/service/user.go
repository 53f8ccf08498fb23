package service

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/hartantowib/account-service/internal/domain"
	"github.com/hartantowib/account-service/internal/objectstore"
	"github.com/hartantowib/account-service/internal/store"
	"github.com/hartantowib/account-service/internal/transport/http/dto"
	"github.com/hartantowib/account-service/internal/validation"
)

// MaxAvatarSize is the upload limit for avatar images.
const MaxAvatarSize = 5 << 20 // 5MB

var avatarContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
}

// AvatarUpload is a validated avatar file ready for the object store.
type AvatarUpload struct {
	Data        io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// UserService handles biodata CRUD and avatar upload, keyed by the
// authenticated user. At most one biodata record exists per user.
type UserService struct {
	store    store.Storage
	uploader objectstore.Uploader
}

func NewUserService(storage store.Storage, uploader objectstore.Uploader) *UserService {
	return &UserService{store: storage, uploader: uploader}
}

func (s *UserService) CreateBiodata(ctx context.Context, user *domain.User, req dto.BiodataRequest) (*dto.BiodataResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	_, err := s.store.Biodata.GetByUserID(ctx, user.ID)
	if err == nil {
		return nil, domain.ErrBiodataExists()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInternal("failed to check biodata", err)
	}

	bio := &domain.UserBiodata{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Street:      req.Street,
		City:        req.City,
		Province:    req.Province,
		Country:     req.Country,
	}
	if err := s.store.Biodata.Create(ctx, bio); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, domain.ErrBiodataExists()
		}
		return nil, domain.ErrInternal("failed to create biodata", err)
	}
	return dto.ToBiodataResponse(bio), nil
}

func (s *UserService) GetBiodata(ctx context.Context, user *domain.User) (*dto.BiodataResponse, error) {
	bio, err := s.getBiodata(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return dto.ToBiodataResponse(bio), nil
}

func (s *UserService) UpdateBiodata(ctx context.Context, user *domain.User, req dto.BiodataRequest) (*dto.BiodataResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	bio, err := s.getBiodata(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	bio.FirstName = req.FirstName
	bio.LastName = req.LastName
	bio.PhoneNumber = req.PhoneNumber
	bio.Street = req.Street
	bio.City = req.City
	bio.Province = req.Province
	bio.Country = req.Country

	if err := s.store.Biodata.Update(ctx, bio); err != nil {
		return nil, domain.ErrInternal("failed to update biodata", err)
	}
	return dto.ToBiodataResponse(bio), nil
}

// UploadAvatar validates size and MIME type, stores the image and records
// the returned public URL on the biodata.
func (s *UserService) UploadAvatar(ctx context.Context, user *domain.User, upload AvatarUpload) (*dto.BiodataResponse, error) {
	if upload.Size > MaxAvatarSize {
		return nil, domain.ErrAvatarTooLarge(MaxAvatarSize)
	}
	ext, ok := avatarContentTypes[upload.ContentType]
	if !ok {
		return nil, domain.ErrAvatarBadType()
	}

	bio, err := s.getBiodata(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// extension comes from the validated content type, never the client filename
	key := "avatars/" + uuid.NewString() + ext
	url, err := s.uploader.Upload(ctx, key, upload.Data, upload.ContentType, upload.Size)
	if err != nil {
		return nil, domain.ErrInternal("failed to upload avatar", err)
	}

	bio.Avatar = url
	if err := s.store.Biodata.Update(ctx, bio); err != nil {
		return nil, domain.ErrInternal("failed to update biodata", err)
	}
	return dto.ToBiodataResponse(bio), nil
}

func (s *UserService) getBiodata(ctx context.Context, userID string) (*domain.UserBiodata, error) {
	bio, err := s.store.Biodata.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBiodataNotFound()
		}
		return nil, domain.ErrInternal("failed to load biodata", err)
	}
	return bio, nil
}

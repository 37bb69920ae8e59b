package usecase

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"github.com/rs/zerolog/log"
)

// ImageUpload is one file from a multipart form.
type ImageUpload struct {
	Name     string
	Mimetype string
	Data     []byte
}

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var allowedImageMimes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

func allowedImage(name string, mimetype string) bool {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return allowedImageExts[ext]
	}
	return allowedImageMimes[strings.ToLower(mimetype)]
}

type ImageUsecase struct {
	tx         repo.TransactionManager
	imageRepo  repo.ImageRepository
	laptopRepo repo.LaptopRepository
}

func NewImageUsecase(
	tx repo.TransactionManager,
	imageRepo repo.ImageRepository,
	laptopRepo repo.LaptopRepository,
) *ImageUsecase {
	return &ImageUsecase{
		tx:         tx,
		imageRepo:  imageRepo,
		laptopRepo: laptopRepo,
	}
}

// Add stores one upload. Disallowed types are skipped silently (added =
// false, no error) so a multi-file upload stays best-effort.
func (u *ImageUsecase) Add(ctx context.Context, laptopID int64, up ImageUpload, isPrimary bool) (bool, error) {
	if laptopID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.laptopRepo.FindByID(ctx, laptopID); err != nil {
		if err == repo.ErrNotFound {
			return false, NewHTTPError(http.StatusNotFound, "not found")
		}
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !allowedImage(up.Name, up.Mimetype) {
		log.Warn().Int64("laptop_id", laptopID).Str("name", up.Name).Str("mimetype", up.Mimetype).Msg("skipping disallowed image upload")
		return false, nil
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if isPrimary {
			if err := r.Images().ClearPrimary(ctx, laptopID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		if _, err := r.Images().Create(ctx, model.LaptopImage{
			LaptopID:      laptopID,
			ImageData:     up.Data,
			ImageMimetype: up.Mimetype,
			ImageName:     up.Name,
			IsPrimary:     isPrimary,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetPrimary clears every primary flag for the laptop and sets the target
// in one transaction, so there is no observable moment with zero or two
// primaries.
func (u *ImageUsecase) SetPrimary(ctx context.Context, laptopID int64, imageID int64) error {
	if laptopID <= 0 || imageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Images().FindByID(ctx, laptopID, imageID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Images().ClearPrimary(ctx, laptopID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Images().SetPrimary(ctx, laptopID, imageID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Delete removes the image; when it was the primary, another remaining
// image is promoted in the same transaction.
func (u *ImageUsecase) Delete(ctx context.Context, laptopID int64, imageID int64) error {
	if laptopID <= 0 || imageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		img, err := r.Images().FindByID(ctx, laptopID, imageID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Images().Delete(ctx, laptopID, imageID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if img.IsPrimary {
			if err := r.Images().PromoteAny(ctx, laptopID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
}

// GetPrimaryOrAny is the byte-delivery read for the cover image.
func (u *ImageUsecase) GetPrimaryOrAny(ctx context.Context, laptopID int64) (model.LaptopImage, error) {
	if laptopID <= 0 {
		return model.LaptopImage{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	img, err := u.imageRepo.FindPrimaryOrAny(ctx, laptopID)
	if err == repo.ErrNotFound {
		return model.LaptopImage{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.LaptopImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return img, nil
}

func (u *ImageUsecase) GetByID(ctx context.Context, laptopID int64, imageID int64) (model.LaptopImage, error) {
	if laptopID <= 0 || imageID <= 0 {
		return model.LaptopImage{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	img, err := u.imageRepo.FindByID(ctx, laptopID, imageID)
	if err == repo.ErrNotFound {
		return model.LaptopImage{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.LaptopImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return img, nil
}

package usecase

import (
	"context"
	"net/http"
	"testing"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newImageUsecaseForTest() (*ImageUsecase, *fakeTxManager, *mockImageRepo, *mockLaptopRepo) {
	tx := newFakeTxManager()
	images := new(mockImageRepo)
	laptops := new(mockLaptopRepo)
	return NewImageUsecase(tx, images, laptops), tx, images, laptops
}

func TestAllowedImage(t *testing.T) {
	assert.True(t, allowedImage("front.jpg", ""))
	assert.True(t, allowedImage("FRONT.JPEG", ""))
	assert.True(t, allowedImage("keyboard.png", "application/octet-stream"))
	assert.True(t, allowedImage("spin.gif", ""))
	assert.False(t, allowedImage("notes.txt", "text/plain"))
	assert.False(t, allowedImage("archive.zip", "image/png")) // extension wins
	assert.True(t, allowedImage("", "image/jpeg"))            // mimetype fallback
	assert.False(t, allowedImage("", "text/html"))
}

func TestImageAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("disallowed type is skipped not failed", func(t *testing.T) {
		uc, tx, _, laptops := newImageUsecaseForTest()

		laptops.On("FindByID", ctx, int64(1)).Return(model.Laptop{ID: 1}, nil)

		added, err := uc.Add(ctx, 1, ImageUpload{Name: "invoice.pdf", Mimetype: "application/pdf"}, false)
		require.NoError(t, err)
		assert.False(t, added)
		tx.repos.images.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("primary upload clears previous primary", func(t *testing.T) {
		uc, tx, _, laptops := newImageUsecaseForTest()

		laptops.On("FindByID", ctx, int64(1)).Return(model.Laptop{ID: 1}, nil)
		tx.repos.images.On("ClearPrimary", ctx, int64(1)).Return(nil)
		tx.repos.images.On("Create", ctx, mock.MatchedBy(func(img model.LaptopImage) bool {
			return img.LaptopID == 1 && img.IsPrimary
		})).Return(model.LaptopImage{ID: 5}, nil)

		added, err := uc.Add(ctx, 1, ImageUpload{Name: "front.jpg", Mimetype: "image/jpeg"}, true)
		require.NoError(t, err)
		assert.True(t, added)
		tx.repos.images.AssertExpectations(t)
	})

	t.Run("unknown laptop", func(t *testing.T) {
		uc, _, _, laptops := newImageUsecaseForTest()

		laptops.On("FindByID", ctx, int64(9)).Return(model.Laptop{}, repo.ErrNotFound)

		_, err := uc.Add(ctx, 9, ImageUpload{Name: "front.jpg"}, false)
		requireHTTPError(t, err, http.StatusNotFound, "not found")
	})
}

func TestImageSetPrimary(t *testing.T) {
	ctx := context.Background()
	uc, tx, _, _ := newImageUsecaseForTest()

	tx.repos.images.On("FindByID", ctx, int64(1), int64(5)).Return(model.LaptopImage{ID: 5, LaptopID: 1}, nil)
	tx.repos.images.On("ClearPrimary", ctx, int64(1)).Return(nil)
	tx.repos.images.On("SetPrimary", ctx, int64(1), int64(5)).Return(nil)

	require.NoError(t, uc.SetPrimary(ctx, 1, 5))
	tx.repos.images.AssertExpectations(t)
}

func TestImageDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting the primary promotes another", func(t *testing.T) {
		uc, tx, _, _ := newImageUsecaseForTest()

		tx.repos.images.On("FindByID", ctx, int64(1), int64(5)).Return(model.LaptopImage{ID: 5, LaptopID: 1, IsPrimary: true}, nil)
		tx.repos.images.On("Delete", ctx, int64(1), int64(5)).Return(nil)
		tx.repos.images.On("PromoteAny", ctx, int64(1)).Return(nil)

		require.NoError(t, uc.Delete(ctx, 1, 5))
		tx.repos.images.AssertExpectations(t)
	})

	t.Run("deleting a non-primary leaves the primary alone", func(t *testing.T) {
		uc, tx, _, _ := newImageUsecaseForTest()

		tx.repos.images.On("FindByID", ctx, int64(1), int64(6)).Return(model.LaptopImage{ID: 6, LaptopID: 1}, nil)
		tx.repos.images.On("Delete", ctx, int64(1), int64(6)).Return(nil)

		require.NoError(t, uc.Delete(ctx, 1, 6))
		tx.repos.images.AssertNotCalled(t, "PromoteAny", mock.Anything, mock.Anything)
	})
}

func TestImageGetPrimaryOrAny(t *testing.T) {
	ctx := context.Background()
	uc, _, images, _ := newImageUsecaseForTest()

	t.Run("no image is 404", func(t *testing.T) {
		images.On("FindPrimaryOrAny", ctx, int64(1)).Return(model.LaptopImage{}, repo.ErrNotFound).Once()

		_, err := uc.GetPrimaryOrAny(ctx, 1)
		requireHTTPError(t, err, http.StatusNotFound, "not found")
	})

	t.Run("returns bytes and mimetype", func(t *testing.T) {
		images.On("FindPrimaryOrAny", ctx, int64(1)).Return(model.LaptopImage{
			ID: 5, ImageMimetype: "image/png", ImageData: []byte{0x89, 0x50},
		}, nil).Once()

		img, err := uc.GetPrimaryOrAny(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ImageMimetype)
		assert.NotEmpty(t, img.ImageData)
	})
}

package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requireHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, msg, he.Message)
}

func newLaptopUsecaseForTest() (*LaptopUsecase, *fakeTxManager, *mockLaptopRepo, *mockPartLinkRepo, *mockImageRepo) {
	tx := newFakeTxManager()
	laptops := new(mockLaptopRepo)
	links := new(mockPartLinkRepo)
	images := new(mockImageRepo)
	return NewLaptopUsecase(tx, laptops, links, images), tx, laptops, links, images
}

func TestLaptopCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("generates serial and coerces numbers", func(t *testing.T) {
		uc, tx, _, _, _ := newLaptopUsecaseForTest()

		tx.repos.laptops.On("CountBySerialPrefix", ctx, mock.Anything).Return(int64(0), nil)
		tx.repos.laptops.On("SerialExists", ctx, mock.Anything).Return(false, nil)
		tx.repos.laptops.On("Create", ctx, mock.MatchedBy(func(l model.Laptop) bool {
			return l.LaptopName == "Dell Latitude 7490" &&
				strings.HasPrefix(l.SerialNumber, "DL") &&
				l.PriceBought == 150.5 &&
				l.PriceToSell == 0 && // garbage coerces to zero
				!l.Sold
		})).Return(model.Laptop{ID: 1, SerialNumber: "DL012601"}, nil)

		created, err := uc.Create(ctx, LaptopInput{
			LaptopName:  "  Dell Latitude 7490  ",
			PriceBought: "150.50",
			PriceToSell: "not a number",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		uc, _, _, _, _ := newLaptopUsecaseForTest()

		_, err := uc.Create(ctx, LaptopInput{LaptopName: "   "}, nil)
		requireHTTPError(t, err, http.StatusBadRequest, "laptop name required")
	})

	t.Run("first stored image becomes primary, disallowed skipped", func(t *testing.T) {
		uc, tx, _, _, _ := newLaptopUsecaseForTest()

		tx.repos.laptops.On("CountBySerialPrefix", ctx, mock.Anything).Return(int64(0), nil)
		tx.repos.laptops.On("SerialExists", ctx, mock.Anything).Return(false, nil)
		tx.repos.laptops.On("Create", ctx, mock.Anything).Return(model.Laptop{ID: 7}, nil)

		tx.repos.images.On("Create", ctx, mock.MatchedBy(func(img model.LaptopImage) bool {
			return img.LaptopID == 7 && img.ImageName == "front.jpg" && img.IsPrimary
		})).Return(model.LaptopImage{ID: 1}, nil).Once()
		tx.repos.images.On("Create", ctx, mock.MatchedBy(func(img model.LaptopImage) bool {
			return img.ImageName == "back.png" && !img.IsPrimary
		})).Return(model.LaptopImage{ID: 2}, nil).Once()

		_, err := uc.Create(ctx, LaptopInput{LaptopName: "HP EliteBook"}, []ImageUpload{
			{Name: "notes.txt", Mimetype: "text/plain"},
			{Name: "front.jpg", Mimetype: "image/jpeg"},
			{Name: "back.png", Mimetype: "image/png"},
		})
		require.NoError(t, err)
		tx.repos.images.AssertExpectations(t)
	})
}

func TestLaptopInstallPart(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes one unit and links", func(t *testing.T) {
		uc, tx, _, _, _ := newLaptopUsecaseForTest()

		tx.repos.laptops.On("FindByID", ctx, int64(1)).Return(model.Laptop{ID: 1}, nil)
		tx.repos.spareParts.On("FindByID", ctx, int64(9)).Return(model.SparePart{ID: 9, Quantity: 1}, nil)
		tx.repos.spareParts.On("DecrementIfAvailable", ctx, int64(9)).Return(true, nil)
		tx.repos.partLinks.On("Create", ctx, model.LaptopSparepart{LaptopID: 1, SparepartID: 9}).Return(nil)

		require.NoError(t, uc.InstallPart(ctx, 1, 9))
		tx.repos.partLinks.AssertExpectations(t)
	})

	t.Run("out of stock", func(t *testing.T) {
		uc, tx, _, _, _ := newLaptopUsecaseForTest()

		tx.repos.laptops.On("FindByID", ctx, int64(1)).Return(model.Laptop{ID: 1}, nil)
		tx.repos.spareParts.On("FindByID", ctx, int64(9)).Return(model.SparePart{ID: 9}, nil)
		tx.repos.spareParts.On("DecrementIfAvailable", ctx, int64(9)).Return(false, nil)

		err := uc.InstallPart(ctx, 1, 9)
		requireHTTPError(t, err, http.StatusBadRequest, "out of stock")
		tx.repos.partLinks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown part", func(t *testing.T) {
		uc, tx, _, _, _ := newLaptopUsecaseForTest()

		tx.repos.laptops.On("FindByID", ctx, int64(1)).Return(model.Laptop{ID: 1}, nil)
		tx.repos.spareParts.On("FindByID", ctx, int64(9)).Return(model.SparePart{}, repo.ErrNotFound)

		err := uc.InstallPart(ctx, 1, 9)
		requireHTTPError(t, err, http.StatusNotFound, "not found")
	})
}

func TestLaptopUninstallPart(t *testing.T) {
	ctx := context.Background()

	t.Run("returns one unit to stock", func(t *testing.T) {
		uc, tx, _, _, _ := newLaptopUsecaseForTest()

		tx.repos.partLinks.On("DeleteOne", ctx, int64(1), int64(9)).Return(nil)
		tx.repos.spareParts.On("Increment", ctx, int64(9)).Return(nil)

		require.NoError(t, uc.UninstallPart(ctx, 1, 9))
		tx.repos.spareParts.AssertExpectations(t)
	})

	t.Run("no link no increment", func(t *testing.T) {
		uc, tx, _, _, _ := newLaptopUsecaseForTest()

		tx.repos.partLinks.On("DeleteOne", ctx, int64(1), int64(9)).Return(repo.ErrNotFound)

		err := uc.UninstallPart(ctx, 1, 9)
		requireHTTPError(t, err, http.StatusNotFound, "not found")
		tx.repos.spareParts.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
	})
}

func TestLaptopBulkOpsRequireIDs(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _, _ := newLaptopUsecaseForTest()

	err := uc.BulkDelete(ctx, nil)
	requireHTTPError(t, err, http.StatusBadRequest, "no laptop ids provided")

	err = uc.BulkDuplicate(ctx, []int64{})
	requireHTTPError(t, err, http.StatusBadRequest, "no laptop ids provided")
}

func TestLaptopDuplicate(t *testing.T) {
	ctx := context.Background()
	uc, tx, _, _, _ := newLaptopUsecaseForTest()

	warranty := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	soldAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	src := model.Laptop{
		ID: 3, SerialNumber: "DL012601", LaptopName: "Dell Latitude",
		PriceBought: 100, PriceToSell: 250, Fees: 10,
		WarrantyStart: &warranty, WarrantyDays: 90,
		Sold: true, DateSold: &soldAt,
	}

	tx.repos.laptops.On("FindByID", ctx, int64(3)).Return(src, nil)
	tx.repos.laptops.On("CountBySerialPrefix", ctx, mock.Anything).Return(int64(1), nil)
	tx.repos.laptops.On("SerialExists", ctx, mock.Anything).Return(false, nil)
	tx.repos.laptops.On("Create", ctx, mock.MatchedBy(func(l model.Laptop) bool {
		return l.LaptopName == "Dell Latitude (Copy)" &&
			l.SerialNumber != src.SerialNumber &&
			!l.Sold && l.DateSold == nil &&
			l.PriceToSell == 250
	})).Return(model.Laptop{ID: 4, LaptopName: "Dell Latitude (Copy)"}, nil)
	tx.repos.images.On("ListByLaptopID", ctx, int64(3)).Return([]model.LaptopImage{}, nil)
	tx.repos.partLinks.On("ListByLaptopID", ctx, int64(3)).Return([]model.LaptopSparepart{
		{ID: 1, LaptopID: 3, SparepartID: 9},
	}, nil)
	tx.repos.partLinks.On("Create", ctx, model.LaptopSparepart{LaptopID: 4, SparepartID: 9}).Return(nil)

	copied, err := uc.Duplicate(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), copied.ID)
	// copied links never touch stock
	tx.repos.spareParts.AssertNotCalled(t, "DecrementIfAvailable", mock.Anything, mock.Anything)
}

func TestLaptopDeleteCascades(t *testing.T) {
	ctx := context.Background()
	uc, tx, _, _, _ := newLaptopUsecaseForTest()

	tx.repos.images.On("DeleteByLaptopID", ctx, int64(5)).Return(nil)
	tx.repos.partLinks.On("DeleteByLaptopID", ctx, int64(5)).Return(nil)
	tx.repos.laptops.On("Delete", ctx, int64(5)).Return(nil)

	require.NoError(t, uc.Delete(ctx, 5))
	tx.repos.images.AssertExpectations(t)
	tx.repos.partLinks.AssertExpectations(t)
}

func TestLaptopListSoldTotals(t *testing.T) {
	ctx := context.Background()
	uc, _, laptops, _, _ := newLaptopUsecaseForTest()

	laptops.On("List", ctx, repo.LaptopListQuery{Sold: true}).Return([]model.Laptop{
		{PriceBought: 100, PriceToSell: 250, Fees: 10},
		{PriceBought: 200, PriceToSell: 300, Fees: 0},
	}, nil)

	out, err := uc.ListSold(ctx, LaptopListInput{})
	require.NoError(t, err)
	assert.Equal(t, 240.0, out.TotalProfit)
	assert.Equal(t, 550.0, out.TotalSales)
}

func TestCatalogHidesSoldAndCosts(t *testing.T) {
	ctx := context.Background()
	uc, _, laptops, links, images := newLaptopUsecaseForTest()

	t.Run("sold detail is 404", func(t *testing.T) {
		laptops.On("FindByID", ctx, int64(2)).Return(model.Laptop{ID: 2, Sold: true}, nil).Once()

		_, err := uc.GetCatalogDetail(ctx, 2)
		requireHTTPError(t, err, http.StatusNotFound, "not found")
	})

	t.Run("detail exposes sale price only", func(t *testing.T) {
		laptops.On("FindByID", ctx, int64(3)).Return(model.Laptop{
			ID: 3, LaptopName: "HP EliteBook", PriceBought: 100, PriceToSell: 250, Fees: 5,
		}, nil).Once()
		links.On("ListInstalledParts", ctx, int64(3)).Return([]model.SparePart{}, nil)
		images.On("ListByLaptopID", ctx, int64(3)).Return([]model.LaptopImage{{ID: 11}, {ID: 12}}, nil)

		out, err := uc.GetCatalogDetail(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 250.0, out.Item.Price)
		assert.Equal(t, []int64{11, 12}, out.ImageIDs)
	})
}

func TestLaptopExportCSV(t *testing.T) {
	ctx := context.Background()
	uc, _, laptops, _, _ := newLaptopUsecaseForTest()

	soldAt := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	laptops.On("ListAll", ctx).Return([]model.Laptop{
		{
			ID: 1, SerialNumber: "DL032601", LaptopName: "Dell Latitude",
			PriceBought: 150.5, PriceToSell: 300, Sold: true, DateSold: &soldAt,
			CreatedDate: soldAt, LastEdited: soldAt,
		},
	}, nil)

	data, err := uc.ExportCSV(ctx)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,serial_number,laptop_name"))
	assert.Contains(t, lines[1], "DL032601")
	assert.Contains(t, lines[1], "150.5")
	assert.Contains(t, lines[1], "2026-03-02 14:30:00")
}

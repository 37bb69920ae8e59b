package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"
	"refurbstore/internal/validator"

	"github.com/rs/zerolog/log"
)

type LaptopUsecase struct {
	tx           repo.TransactionManager
	laptopRepo   repo.LaptopRepository
	partLinkRepo repo.PartLinkRepository
	imageRepo    repo.ImageRepository
}

func NewLaptopUsecase(
	tx repo.TransactionManager,
	laptopRepo repo.LaptopRepository,
	partLinkRepo repo.PartLinkRepository,
	imageRepo repo.ImageRepository,
) *LaptopUsecase {
	return &LaptopUsecase{
		tx:           tx,
		laptopRepo:   laptopRepo,
		partLinkRepo: partLinkRepo,
		imageRepo:    imageRepo,
	}
}

// LaptopInput carries raw form values. Numeric fields are coerced, not
// validated hard: garbage prices become 0.
type LaptopInput struct {
	LaptopName    string
	CPU           string
	RAM           string
	Storage       string
	OS            string
	Notes         string
	PriceBought   string
	PriceToSell   string
	Fees          string
	WarrantyStart string
	WarrantyDays  string
	Sold          bool
}

type LaptopListInput struct {
	Search string
	SortBy string
	Order  string
}

type LaptopListOutput struct {
	Items []model.Laptop   `json:"items"`
	Stats repo.LaptopStats `json:"stats"`
}

// SoldListOutput is the completed-sales page: items plus money totals.
type SoldListOutput struct {
	Items       []model.Laptop `json:"items"`
	TotalProfit float64        `json:"total_profit"`
	TotalSales  float64        `json:"total_sales"`
}

type LaptopDetailOutput struct {
	Laptop         model.Laptop        `json:"laptop"`
	InstalledParts []model.SparePart   `json:"installed_parts"`
	Images         []model.LaptopImage `json:"images"`
}

func (u *LaptopUsecase) ListAvailable(ctx context.Context, in LaptopListInput) (LaptopListOutput, error) {
	items, err := u.laptopRepo.List(ctx, repo.LaptopListQuery{
		Sold:   false,
		Search: in.Search,
		SortBy: in.SortBy,
		Order:  in.Order,
	})
	if err != nil {
		return LaptopListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	stats, err := u.laptopRepo.Stats(ctx)
	if err != nil {
		return LaptopListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LaptopListOutput{Items: items, Stats: stats}, nil
}

func (u *LaptopUsecase) ListSold(ctx context.Context, in LaptopListInput) (SoldListOutput, error) {
	items, err := u.laptopRepo.List(ctx, repo.LaptopListQuery{
		Sold:   true,
		Search: in.Search,
		SortBy: in.SortBy,
		Order:  in.Order,
	})
	if err != nil {
		return SoldListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := SoldListOutput{Items: items}
	for _, l := range items {
		out.TotalProfit += l.PriceToSell - (l.PriceBought + l.Fees)
		out.TotalSales += l.PriceToSell
	}
	return out, nil
}

func (u *LaptopUsecase) GetDetail(ctx context.Context, id int64) (LaptopDetailOutput, error) {
	if id <= 0 {
		return LaptopDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	l, err := u.laptopRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return LaptopDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return LaptopDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	parts, err := u.partLinkRepo.ListInstalledParts(ctx, id)
	if err != nil {
		return LaptopDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	images, err := u.imageRepo.ListByLaptopID(ctx, id)
	if err != nil {
		return LaptopDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LaptopDetailOutput{Laptop: l, InstalledParts: parts, Images: images}, nil
}

// Create persists the laptop with a freshly generated serial number and
// stores the uploads that pass the image allow-list. The first stored
// image becomes primary by convention.
func (u *LaptopUsecase) Create(ctx context.Context, in LaptopInput, images []ImageUpload) (model.Laptop, error) {
	name := strings.TrimSpace(in.LaptopName)
	if name == "" {
		return model.Laptop{}, NewHTTPError(http.StatusBadRequest, "laptop name required")
	}

	var created model.Laptop

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		serial, err := generateSerial(ctx, r.Laptops(), name, time.Now())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		l := model.Laptop{
			SerialNumber:  serial,
			LaptopName:    name,
			CPU:           in.CPU,
			RAM:           in.RAM,
			Storage:       in.Storage,
			OS:            in.OS,
			Notes:         in.Notes,
			PriceBought:   validator.Float(in.PriceBought),
			PriceToSell:   validator.Float(in.PriceToSell),
			Fees:          validator.Float(in.Fees),
			WarrantyStart: validator.Date(in.WarrantyStart),
			WarrantyDays:  validator.Int(in.WarrantyDays),
			Sold:          false,
		}

		created, err = r.Laptops().Create(ctx, l)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		stored := 0
		for _, up := range images {
			if !allowedImage(up.Name, up.Mimetype) {
				// Best-effort multi-upload: skip, don't fail.
				log.Warn().Str("name", up.Name).Str("mimetype", up.Mimetype).Msg("skipping disallowed image upload")
				continue
			}
			img := model.LaptopImage{
				LaptopID:      created.ID,
				ImageData:     up.Data,
				ImageMimetype: up.Mimetype,
				ImageName:     up.Name,
				IsPrimary:     stored == 0,
			}
			if _, err := r.Images().Create(ctx, img); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			stored++
		}
		return nil
	})

	if err != nil {
		return model.Laptop{}, err
	}

	log.Info().Int64("laptop_id", created.ID).Str("serial", created.SerialNumber).Msg("laptop created")
	return created, nil
}

// Update is a full replace of the mutable fields. The sold flag here is a
// plain write, independent of the order workflow: the manual admin
// correction escape hatch.
func (u *LaptopUsecase) Update(ctx context.Context, id int64, in LaptopInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.LaptopName)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "laptop name required")
	}

	existing, err := u.laptopRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing.LaptopName = name
	existing.CPU = in.CPU
	existing.RAM = in.RAM
	existing.Storage = in.Storage
	existing.OS = in.OS
	existing.Notes = in.Notes
	existing.PriceBought = validator.Float(in.PriceBought)
	existing.PriceToSell = validator.Float(in.PriceToSell)
	existing.Fees = validator.Float(in.Fees)
	existing.WarrantyStart = validator.Date(in.WarrantyStart)
	existing.WarrantyDays = validator.Int(in.WarrantyDays)
	existing.Sold = in.Sold

	if err := u.laptopRepo.Update(ctx, existing); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *LaptopUsecase) MarkSold(ctx context.Context, id int64) error {
	now := time.Now()
	return u.setSold(ctx, id, true, &now)
}

func (u *LaptopUsecase) MarkAvailable(ctx context.Context, id int64) error {
	return u.setSold(ctx, id, false, nil)
}

func (u *LaptopUsecase) setSold(ctx context.Context, id int64, sold bool, soldAt *time.Time) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.laptopRepo.SetSold(ctx, id, sold, soldAt)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Delete cascades: images and part links go first, then the laptop row,
// all in one transaction.
func (u *LaptopUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return deleteLaptopTx(ctx, r, id)
	})
}

func deleteLaptopTx(ctx context.Context, r repo.TxRepos, id int64) error {
	if err := r.Images().DeleteByLaptopID(ctx, id); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.PartLinks().DeleteByLaptopID(ctx, id); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	err := r.Laptops().Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Duplicate deep-copies the descriptive and financial fields under a new
// serial, resets sold, and copies images and installed-part links. Stock
// is deliberately not re-decremented for copied links.
func (u *LaptopUsecase) Duplicate(ctx context.Context, id int64) (model.Laptop, error) {
	if id <= 0 {
		return model.Laptop{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var copied model.Laptop
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		copied, err = duplicateLaptopTx(ctx, r, id)
		return err
	})
	if err != nil {
		return model.Laptop{}, err
	}
	return copied, nil
}

func duplicateLaptopTx(ctx context.Context, r repo.TxRepos, id int64) (model.Laptop, error) {
	src, err := r.Laptops().FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Laptop{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	copyName := src.LaptopName + " (Copy)"
	serial, err := generateSerial(ctx, r.Laptops(), copyName, time.Now())
	if err != nil {
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	copied, err := r.Laptops().Create(ctx, model.Laptop{
		SerialNumber:  serial,
		LaptopName:    copyName,
		CPU:           src.CPU,
		RAM:           src.RAM,
		Storage:       src.Storage,
		OS:            src.OS,
		Notes:         src.Notes,
		PriceBought:   src.PriceBought,
		PriceToSell:   src.PriceToSell,
		Fees:          src.Fees,
		WarrantyStart: src.WarrantyStart,
		WarrantyDays:  src.WarrantyDays,
		Sold:          false,
	})
	if err != nil {
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	images, err := r.Images().ListByLaptopID(ctx, id)
	if err != nil {
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for _, img := range images {
		if _, err := r.Images().Create(ctx, model.LaptopImage{
			LaptopID:      copied.ID,
			ImageData:     img.ImageData,
			ImageMimetype: img.ImageMimetype,
			ImageName:     img.ImageName,
			IsPrimary:     img.IsPrimary,
		}); err != nil {
			return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	links, err := r.PartLinks().ListByLaptopID(ctx, id)
	if err != nil {
		return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	for _, link := range links {
		if err := r.PartLinks().Create(ctx, model.LaptopSparepart{
			LaptopID:    copied.ID,
			SparepartID: link.SparepartID,
		}); err != nil {
			return model.Laptop{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return copied, nil
}

// BulkDelete removes every id or nothing: one transaction, abort on the
// first failure.
func (u *LaptopUsecase) BulkDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return NewHTTPError(http.StatusBadRequest, "no laptop ids provided")
	}
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, id := range ids {
			if err := deleteLaptopTx(ctx, r, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (u *LaptopUsecase) BulkDuplicate(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return NewHTTPError(http.StatusBadRequest, "no laptop ids provided")
	}
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, id := range ids {
			if _, err := duplicateLaptopTx(ctx, r, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// InstallPart links one part instance to the laptop and consumes one unit
// of stock in the same transaction.
func (u *LaptopUsecase) InstallPart(ctx context.Context, laptopID int64, sparepartID int64) error {
	if laptopID <= 0 || sparepartID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Laptops().FindByID(ctx, laptopID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if _, err := r.SpareParts().FindByID(ctx, sparepartID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		ok, err := r.SpareParts().DecrementIfAvailable(ctx, sparepartID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return NewHTTPError(http.StatusBadRequest, "out of stock")
		}

		if err := r.PartLinks().Create(ctx, model.LaptopSparepart{
			LaptopID:    laptopID,
			SparepartID: sparepartID,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// UninstallPart removes exactly one link instance and returns one unit to
// stock in the same transaction.
func (u *LaptopUsecase) UninstallPart(ctx context.Context, laptopID int64, sparepartID int64) error {
	if laptopID <= 0 || sparepartID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.PartLinks().DeleteOne(ctx, laptopID, sparepartID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.SpareParts().Increment(ctx, sparepartID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// CatalogItem is the storefront view of a laptop. Purchase cost and fees
// never leave the admin API.
type CatalogItem struct {
	ID           int64   `json:"id"`
	SerialNumber string  `json:"serial_number"`
	LaptopName   string  `json:"laptop_name"`
	CPU          string  `json:"cpu"`
	RAM          string  `json:"ram"`
	Storage      string  `json:"storage"`
	OS           string  `json:"os"`
	Notes        string  `json:"notes"`
	Price        float64 `json:"price"`
	WarrantyDays int     `json:"warranty_days"`
}

type CatalogDetailOutput struct {
	Item           CatalogItem       `json:"item"`
	InstalledParts []model.SparePart `json:"installed_parts"`
	ImageIDs       []int64           `json:"image_ids"`
}

func toCatalogItem(l model.Laptop) CatalogItem {
	return CatalogItem{
		ID:           l.ID,
		SerialNumber: l.SerialNumber,
		LaptopName:   l.LaptopName,
		CPU:          l.CPU,
		RAM:          l.RAM,
		Storage:      l.Storage,
		OS:           l.OS,
		Notes:        l.Notes,
		Price:        l.PriceToSell,
		WarrantyDays: l.WarrantyDays,
	}
}

// ListCatalog lists available laptops for guests.
func (u *LaptopUsecase) ListCatalog(ctx context.Context, in LaptopListInput) ([]CatalogItem, error) {
	laptops, err := u.laptopRepo.List(ctx, repo.LaptopListQuery{
		Sold:   false,
		Search: in.Search,
		SortBy: in.SortBy,
		Order:  in.Order,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]CatalogItem, 0, len(laptops))
	for _, l := range laptops {
		items = append(items, toCatalogItem(l))
	}
	return items, nil
}

// GetCatalogDetail is the guest detail page. Sold laptops 404 here so the
// storefront never shows a dead listing.
func (u *LaptopUsecase) GetCatalogDetail(ctx context.Context, id int64) (CatalogDetailOutput, error) {
	if id <= 0 {
		return CatalogDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	l, err := u.laptopRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return CatalogDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CatalogDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if l.Sold {
		return CatalogDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	parts, err := u.partLinkRepo.ListInstalledParts(ctx, id)
	if err != nil {
		return CatalogDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	images, err := u.imageRepo.ListByLaptopID(ctx, id)
	if err != nil {
		return CatalogDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	imageIDs := make([]int64, 0, len(images))
	for _, img := range images {
		imageIDs = append(imageIDs, img.ID)
	}

	return CatalogDetailOutput{Item: toCatalogItem(l), InstalledParts: parts, ImageIDs: imageIDs}, nil
}

// CSV column order is the store order of the laptops table.
var csvColumns = []string{
	"id", "serial_number", "laptop_name", "cpu", "ram", "storage", "os",
	"notes", "price_bought", "price_to_sell", "fees", "warranty_start",
	"warranty_days", "sold", "date_sold", "created_date", "last_edited",
}

// ExportCSV renders every laptop, header first, raw field values.
func (u *LaptopUsecase) ExportCSV(ctx context.Context) ([]byte, error) {
	laptops, err := u.laptopRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	for _, l := range laptops {
		row := []string{
			strconv.FormatInt(l.ID, 10),
			l.SerialNumber,
			l.LaptopName,
			l.CPU,
			l.RAM,
			l.Storage,
			l.OS,
			l.Notes,
			formatFloat(l.PriceBought),
			formatFloat(l.PriceToSell),
			formatFloat(l.Fees),
			formatDate(l.WarrantyStart),
			strconv.Itoa(l.WarrantyDays),
			strconv.FormatBool(l.Sold),
			formatDate(l.DateSold),
			l.CreatedDate.Format("2006-01-02 15:04:05"),
			l.LastEdited.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

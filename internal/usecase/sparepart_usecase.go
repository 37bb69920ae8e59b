package usecase

import (
	"context"
	"net/http"
	"strings"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"
	"refurbstore/internal/validator"
)

type SparePartUsecase struct {
	partRepo repo.SparePartRepository
}

func NewSparePartUsecase(partRepo repo.SparePartRepository) *SparePartUsecase {
	return &SparePartUsecase{partRepo: partRepo}
}

type SparePartInput struct {
	PartType    string
	StorageType string
	RAMType     string
	RAMSpeed    string
	Capacity    string
	Notes       string
	Quantity    string
}

type SparePartListInput struct {
	PartType    string
	StorageType string
	RAMType     string
	RAMSpeed    string
	SortBy      string
	Order       string
}

func (u *SparePartUsecase) List(ctx context.Context, in SparePartListInput) ([]model.SparePart, error) {
	parts, err := u.partRepo.List(ctx, repo.SparePartListQuery{
		PartType:    in.PartType,
		StorageType: in.StorageType,
		RAMType:     in.RAMType,
		RAMSpeed:    in.RAMSpeed,
		SortBy:      in.SortBy,
		Order:       in.Order,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return parts, nil
}

func (u *SparePartUsecase) Get(ctx context.Context, id int64) (model.SparePart, error) {
	if id <= 0 {
		return model.SparePart{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.partRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.SparePart{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.SparePart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *SparePartUsecase) Create(ctx context.Context, in SparePartInput) (model.SparePart, error) {
	partType, err := parsePartType(in.PartType)
	if err != nil {
		return model.SparePart{}, err
	}

	qty := validator.Int(in.Quantity)
	if qty < 0 {
		return model.SparePart{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	p, repoErr := u.partRepo.Create(ctx, model.SparePart{
		PartType:    partType,
		StorageType: in.StorageType,
		RAMType:     in.RAMType,
		RAMSpeed:    in.RAMSpeed,
		Capacity:    in.Capacity,
		Notes:       in.Notes,
		Quantity:    int64(qty),
	})
	if repoErr != nil {
		return model.SparePart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *SparePartUsecase) Update(ctx context.Context, id int64, in SparePartInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	partType, err := parsePartType(in.PartType)
	if err != nil {
		return err
	}

	qty := validator.Int(in.Quantity)
	if qty < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	existing, repoErr := u.partRepo.FindByID(ctx, id)
	if repoErr == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if repoErr != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing.PartType = partType
	existing.StorageType = in.StorageType
	existing.RAMType = in.RAMType
	existing.RAMSpeed = in.RAMSpeed
	existing.Capacity = in.Capacity
	existing.Notes = in.Notes
	existing.Quantity = int64(qty)

	if err := u.partRepo.Update(ctx, existing); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *SparePartUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.partRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func parsePartType(s string) (model.PartType, error) {
	switch model.PartType(strings.TrimSpace(s)) {
	case model.PartTypeStorage:
		return model.PartTypeStorage, nil
	case model.PartTypeRAM:
		return model.PartTypeRAM, nil
	default:
		return "", NewHTTPError(http.StatusBadRequest, "invalid part type")
	}
}

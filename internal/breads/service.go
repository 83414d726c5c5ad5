package breads

import (
	"context"
	"errors"
	"fmt"

	"github.com/bonappetit-bakery/bakery-backend/internal/images"
	"github.com/bonappetit-bakery/bakery-backend/pkg/db"
	"github.com/bonappetit-bakery/bakery-backend/pkg/db/models"
	"github.com/bonappetit-bakery/bakery-backend/pkg/enums"
	pkgerrors "github.com/bonappetit-bakery/bakery-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type codeLookup interface {
	Lookup(group enums.CodeGroup, code string) string
}

type imageManager interface {
	Append(ctx context.Context, tx *gorm.DB, targetType enums.ImageTargetType, targetNo int64, files []images.UploadedFile) ([]images.ImageRecord, error)
	Remove(ctx context.Context, targetType enums.ImageTargetType, targetNo int64, publicID string) error
	RemoveAll(ctx context.Context, tx *gorm.DB, publicIDs []string) error
}

// Service exposes the bread catalog, including the image flows that exercise
// the sequence manager.
type Service interface {
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, no int64) (*Detail, error)
	Create(ctx context.Context, input CreateInput, files []images.UploadedFile) (*Detail, error)
	Update(ctx context.Context, no int64, input UpdateInput, files []images.UploadedFile) (*Detail, error)
	Delete(ctx context.Context, nos []int64) error
	RemoveImage(ctx context.Context, no int64, publicID string) error
}

type service struct {
	tx        txRunner
	repo      Repository
	imageRepo images.Repository
	imageMgr  imageManager
	codes     codeLookup
}

// NewService builds the bread service.
func NewService(tx txRunner, repo Repository, imageRepo images.Repository, imageMgr imageManager, codes codeLookup) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("bread repository required")
	}
	if imageRepo == nil {
		return nil, fmt.Errorf("image repository required")
	}
	if imageMgr == nil {
		return nil, fmt.Errorf("image manager required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code lookup required")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		imageRepo: imageRepo,
		imageMgr:  imageMgr,
		codes:     codes,
	}, nil
}

func (s *service) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list breads")
	}

	thumbnails, err := s.imageRepo.FirstImageURLs(ctx, enums.ImageTargetTypeBread)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load thumbnails")
	}

	summaries := make([]Summary, 0, len(rows))
	for _, bread := range rows {
		summaries = append(summaries, Summary{
			No:              bread.No,
			Name:            bread.Name,
			Description:     bread.Description,
			UnitPrice:       bread.UnitPrice,
			BreadStatus:     bread.BreadStatus,
			BreadStatusName: s.codes.Lookup(enums.CodeGroupBreadStatus, bread.BreadStatus),
			ImageURL:        thumbnails[bread.No],
			CreatedAt:       bread.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, no int64) (*Detail, error) {
	bread, err := s.repo.FindByNo(ctx, no)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bread not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find bread")
	}

	rows, err := s.imageRepo.FindByTarget(ctx, enums.ImageTargetTypeBread, no)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bread images")
	}

	return s.detail(bread, imageRecords(rows)), nil
}

func (s *service) Create(ctx context.Context, input CreateInput, files []images.UploadedFile) (*Detail, error) {
	var detail *Detail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		bread, err := s.repo.WithTx(tx).Create(ctx, &models.Bread{
			Name:        input.Name,
			Description: input.Description,
			UnitPrice:   input.UnitPrice,
			BreadStatus: input.BreadStatus,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create bread")
		}

		var records []images.ImageRecord
		if len(files) > 0 {
			records, err = s.imageMgr.Append(ctx, tx, enums.ImageTargetTypeBread, bread.No, files)
			if err != nil {
				return err
			}
		}

		detail = s.detail(bread, records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *service) Update(ctx context.Context, no int64, input UpdateInput, files []images.UploadedFile) (*Detail, error) {
	detail, err := s.update(ctx, no, input, files)
	if db.IsUniqueViolation(err, "uq_images_target_order") {
		// Two appends to the same bread raced on positions; the constraint
		// rolled one back, so recompute against the committed state.
		return s.update(ctx, no, input, files)
	}
	return detail, err
}

func (s *service) update(ctx context.Context, no int64, input UpdateInput, files []images.UploadedFile) (*Detail, error) {
	var detail *Detail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByNo(ctx, no); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "bread not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find bread")
		}

		if err := repo.Update(ctx, no, updateFields(input)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update bread")
		}

		if len(files) > 0 {
			if _, err := s.imageMgr.Append(ctx, tx, enums.ImageTargetTypeBread, no, files); err != nil {
				return err
			}
		}

		bread, err := repo.FindByNo(ctx, no)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload bread")
		}

		rows, err := s.imageRepo.WithTx(tx).FindByTarget(ctx, enums.ImageTargetTypeBread, no)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bread images")
		}

		detail = s.detail(bread, imageRecords(rows))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// Delete removes the breads and all of their images; the whole image group
// disappears with its owner, so no reindexing is needed.
func (s *service) Delete(ctx context.Context, nos []int64) error {
	if len(nos) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one bread no is required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteByNos(ctx, nos); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete breads")
		}

		publicIDs, err := s.imageRepo.WithTx(tx).PublicIDsByTargets(ctx, enums.ImageTargetTypeBread, nos)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "collect image ids")
		}

		return s.imageMgr.RemoveAll(ctx, tx, publicIDs)
	})
}

func (s *service) RemoveImage(ctx context.Context, no int64, publicID string) error {
	return s.imageMgr.Remove(ctx, enums.ImageTargetTypeBread, no, publicID)
}

func (s *service) detail(bread *models.Bread, records []images.ImageRecord) *Detail {
	if records == nil {
		records = []images.ImageRecord{}
	}
	return &Detail{
		No:              bread.No,
		Name:            bread.Name,
		Description:     bread.Description,
		UnitPrice:       bread.UnitPrice,
		BreadStatus:     bread.BreadStatus,
		BreadStatusName: s.codes.Lookup(enums.CodeGroupBreadStatus, bread.BreadStatus),
		Images:          records,
		CreatedAt:       bread.CreatedAt,
		UpdatedAt:       bread.UpdatedAt,
	}
}

func updateFields(input UpdateInput) map[string]any {
	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.UnitPrice != nil {
		fields["unit_price"] = *input.UnitPrice
	}
	if input.BreadStatus != nil {
		fields["bread_status"] = *input.BreadStatus
	}
	return fields
}

func imageRecords(rows []models.Image) []images.ImageRecord {
	records := make([]images.ImageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, images.ImageRecord{
			PublicID: row.PublicID,
			URL:      row.URL,
			Name:     row.Name,
			Order:    row.Order,
		})
	}
	return records
}

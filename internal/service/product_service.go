package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexify_backend/internal/model"
	"nexify_backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrForbidden       = errors.New("forbidden: user does not have permission for this action")
	ErrAlreadyVoted    = errors.New("user has already voted for this product")
)

const defaultPageLimit = 4

// ProductService governs the product lifecycle: submission, moderation
// decisions, votes, reports, owner edits, deletion and the public listings.
type ProductService interface {
	CreateProduct(ctx context.Context, owner string, req model.CreateProductRequest) (*model.Product, error)
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	GetProductsByOwner(ctx context.Context, owner string) ([]model.Product, error)
	UpdateByOwner(ctx context.Context, id, caller string, req model.UpdateProductRequest) (*model.Product, error)
	ApplyUserPatch(ctx context.Context, id, caller string, patch model.UserProductPatch) (int64, error)
	ApplyModeratorPatch(ctx context.Context, id string, patch model.ModeratorProductPatch) (int64, error)
	DeleteProduct(ctx context.Context, id, caller string, asModerator bool) error
	ListAccepted(ctx context.Context, search string, page, limit int) (*model.ProductPage, error)
	ListFeatured(ctx context.Context) ([]model.Product, error)
	ListTrending(ctx context.Context) ([]model.Product, error)
	ListRising(ctx context.Context) ([]model.Product, error)
	ListAllForModerator(ctx context.Context) ([]model.Product, error)
	ListReported(ctx context.Context) ([]model.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(ctx context.Context, owner string, req model.CreateProductRequest) (*model.Product, error) {
	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Owner:       owner,
		OwnerName:   req.OwnerName,
		OwnerImage:  req.OwnerImage,
		ProductName: req.ProductName,
		Details:     req.Details,
		Image:       req.Image,
		Tags:        req.Tags,
		Status:      model.StatusPending,
		Voter:       []string{},
		Timestamp:   timestamp,
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) GetProductsByOwner(ctx context.Context, owner string) ([]model.Product, error) {
	products, err := s.repo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner products from repo: %w", err)
	}
	return products, nil
}

// UpdateByOwner applies the owner-editable fields. Only the owner may edit;
// status, featured, votes and report are untouchable from this path.
func (s *productService) UpdateByOwner(ctx context.Context, id, caller string, req model.UpdateProductRequest) (*model.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}
	if existing.Owner != caller {
		return nil, ErrForbidden
	}

	if req.ProductName != nil {
		existing.ProductName = *req.ProductName
	}
	if req.Details != nil {
		existing.Details = *req.Details
	}
	if req.Image != nil {
		existing.Image = *req.Image
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}
	if req.Timestamp != nil {
		existing.Timestamp = *req.Timestamp
	}

	if _, err := s.repo.UpdateOwnerFields(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}
	return existing, nil
}

// ApplyUserPatch handles the two transitions any authenticated user may
// trigger: a vote or a report. A body naming neither is a no-op.
func (s *productService) ApplyUserPatch(ctx context.Context, id, caller string, patch model.UserProductPatch) (int64, error) {
	var modified int64

	if patch.Report != nil {
		n, err := s.repo.SetReport(ctx, id, *patch.Report)
		if err != nil {
			return 0, fmt.Errorf("failed to set report: %w", err)
		}
		if n == 0 {
			return 0, ErrProductNotFound
		}
		modified += n
	}

	if patch.Vote {
		n, err := s.repo.AddVote(ctx, id, caller)
		if err != nil {
			return 0, fmt.Errorf("failed to add vote: %w", err)
		}
		if n == 0 {
			// zero rows means either a duplicate voter or a missing product
			existing, err := s.repo.FindByID(ctx, id)
			if err != nil {
				return 0, fmt.Errorf("failed to check product after vote: %w", err)
			}
			if existing == nil {
				return 0, ErrProductNotFound
			}
			return 0, ErrAlreadyVoted
		}
		modified += n
	}

	return modified, nil
}

// ApplyModeratorPatch handles moderation transitions. A status decision must
// be accepted or rejected and carries its sort ranking; anything else leaves
// the document unchanged. The featured flag is monotonic.
func (s *productService) ApplyModeratorPatch(ctx context.Context, id string, patch model.ModeratorProductPatch) (int64, error) {
	var modified int64

	if patch.Status != nil && (*patch.Status == model.StatusAccepted || *patch.Status == model.StatusRejected) {
		sort := 0
		if patch.Sort != nil {
			sort = *patch.Sort
		}
		n, err := s.repo.UpdateStatus(ctx, id, *patch.Status, sort)
		if err != nil {
			return 0, fmt.Errorf("failed to update status: %w", err)
		}
		if n == 0 {
			return 0, ErrProductNotFound
		}
		modified += n
	}

	if patch.Featured != nil && *patch.Featured {
		n, err := s.repo.SetFeatured(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("failed to set featured: %w", err)
		}
		if n == 0 {
			return 0, ErrProductNotFound
		}
		modified += n
	}

	return modified, nil
}

// DeleteProduct removes a product. Owners may delete their own products;
// moderators may delete any. Reviews are not cascaded.
func (s *productService) DeleteProduct(ctx context.Context, id, caller string, asModerator bool) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find product for deletion: %w", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if !asModerator && existing.Owner != caller {
		return ErrForbidden
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product in repo: %w", err)
	}
	return nil
}

// ListAccepted returns one page of the public listing. Page numbers are
// 1-indexed; totalPages is computed from the full filtered count.
func (s *productService) ListAccepted(ctx context.Context, search string, page, limit int) (*model.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	products, total, err := s.repo.ListAccepted(ctx, search, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	return &model.ProductPage{
		Result:     products,
		TotalData:  total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *productService) ListFeatured(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListFeatured(ctx)
}

func (s *productService) ListTrending(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListTrending(ctx)
}

func (s *productService) ListRising(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListRising(ctx)
}

func (s *productService) ListAllForModerator(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *productService) ListReported(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListReported(ctx)
}

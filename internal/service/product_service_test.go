package service

import (
	"context"
	"sort"
	"testing"

	"nexify_backend/internal/model"
	"nexify_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepo keeps products in memory and mirrors the store's
// transition semantics closely enough for the service rules to be tested.
type fakeProductRepo struct {
	products map[string]*model.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[string]*model.Product{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) Create(ctx context.Context, p *model.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) FindByOwner(ctx context.Context, owner string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.Owner == owner {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) UpdateOwnerFields(ctx context.Context, p *model.Product) (int64, error) {
	existing, ok := f.products[p.ID]
	if !ok {
		return 0, nil
	}
	existing.ProductName = p.ProductName
	existing.Details = p.Details
	existing.Image = p.Image
	existing.Tags = p.Tags
	existing.Timestamp = p.Timestamp
	return 1, nil
}

func (f *fakeProductRepo) UpdateStatus(ctx context.Context, id, status string, sortRank int) (int64, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	p.Status = status
	p.Sort = sortRank
	return 1, nil
}

func (f *fakeProductRepo) SetFeatured(ctx context.Context, id string) (int64, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	p.Featured = true
	return 1, nil
}

func (f *fakeProductRepo) AddVote(ctx context.Context, id, voter string) (int64, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	for _, v := range p.Voter {
		if v == voter {
			return 0, nil // duplicate voter matches zero rows
		}
	}
	p.VoteCount++
	p.Voter = append(p.Voter, voter)
	return 1, nil
}

func (f *fakeProductRepo) SetReport(ctx context.Context, id, report string) (int64, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	p.Report = &report
	return 1, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := f.products[id]; !ok {
		return 0, nil
	}
	delete(f.products, id)
	return 1, nil
}

func (f *fakeProductRepo) ListAccepted(ctx context.Context, search string, page, limit int) ([]model.Product, int, error) {
	var accepted []model.Product
	for _, p := range f.products {
		if p.Status == model.StatusAccepted {
			accepted = append(accepted, *p)
		}
	}
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Timestamp.After(accepted[j].Timestamp) })
	total := len(accepted)
	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return accepted[offset:end], total, nil
}

func (f *fakeProductRepo) ListFeatured(ctx context.Context) ([]model.Product, error) { return nil, nil }
func (f *fakeProductRepo) ListTrending(ctx context.Context) ([]model.Product, error) { return nil, nil }
func (f *fakeProductRepo) ListRising(ctx context.Context) ([]model.Product, error)   { return nil, nil }
func (f *fakeProductRepo) ListAll(ctx context.Context) ([]model.Product, error)      { return nil, nil }
func (f *fakeProductRepo) ListReported(ctx context.Context) ([]model.Product, error) { return nil, nil }
func (f *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestCreateProduct_Defaults(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	product, err := svc.CreateProduct(context.Background(), "owner@example.com", model.CreateProductRequest{
		ProductName: "Widget",
		Tags:        []string{"tech"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "owner@example.com", product.Owner)
	assert.Equal(t, model.StatusPending, product.Status)
	assert.False(t, product.Featured)
	assert.Zero(t, product.VoteCount)
	assert.False(t, product.Timestamp.IsZero())
}

func TestApplyModeratorPatch_Decision(t *testing.T) {
	p := &model.Product{ID: "p1", Owner: "o@e.com", Status: model.StatusPending, VoteCount: 7}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	modified, err := svc.ApplyModeratorPatch(context.Background(), "p1", model.ModeratorProductPatch{
		Status: strPtr(model.StatusAccepted),
		Sort:   intPtr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)
	assert.Equal(t, model.StatusAccepted, p.Status)
	assert.Equal(t, 5, p.Sort)
	assert.Equal(t, 7, p.VoteCount) // votes are untouched by a decision
	assert.Nil(t, p.Report)
}

func TestApplyModeratorPatch_PendingIsNoOp(t *testing.T) {
	p := &model.Product{ID: "p1", Status: model.StatusAccepted, Sort: 3}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	modified, err := svc.ApplyModeratorPatch(context.Background(), "p1", model.ModeratorProductPatch{
		Status: strPtr(model.StatusPending),
		Sort:   intPtr(9),
	})

	require.NoError(t, err)
	assert.Zero(t, modified)
	assert.Equal(t, model.StatusAccepted, p.Status)
	assert.Equal(t, 3, p.Sort)
}

func TestApplyModeratorPatch_Featured(t *testing.T) {
	p := &model.Product{ID: "p1", Status: model.StatusPending}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	modified, err := svc.ApplyModeratorPatch(context.Background(), "p1", model.ModeratorProductPatch{
		Featured: boolPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)
	assert.True(t, p.Featured)

	// featuring is independent of status and there is no unfeature
	modified, err = svc.ApplyModeratorPatch(context.Background(), "p1", model.ModeratorProductPatch{
		Featured: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Zero(t, modified)
	assert.True(t, p.Featured)
}

func TestApplyUserPatch_Vote(t *testing.T) {
	p := &model.Product{ID: "p1", Voter: []string{}}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	modified, err := svc.ApplyUserPatch(context.Background(), "p1", "voter@example.com", model.UserProductPatch{Vote: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)
	assert.Equal(t, 1, p.VoteCount)
	assert.Equal(t, []string{"voter@example.com"}, p.Voter)

	// the same voter again is rejected, not double-counted
	_, err = svc.ApplyUserPatch(context.Background(), "p1", "voter@example.com", model.UserProductPatch{Vote: true})
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, p.VoteCount)
}

func TestApplyUserPatch_VoteMissingProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.ApplyUserPatch(context.Background(), "missing", "voter@example.com", model.UserProductPatch{Vote: true})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestApplyUserPatch_ReportOverwrites(t *testing.T) {
	p := &model.Product{ID: "p1"}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	_, err := svc.ApplyUserPatch(context.Background(), "p1", "a@example.com", model.UserProductPatch{Report: strPtr("spam")})
	require.NoError(t, err)
	require.NotNil(t, p.Report)
	assert.Equal(t, "spam", *p.Report)

	// last reporter wins
	_, err = svc.ApplyUserPatch(context.Background(), "p1", "b@example.com", model.UserProductPatch{Report: strPtr("offensive")})
	require.NoError(t, err)
	assert.Equal(t, "offensive", *p.Report)
}

func TestApplyUserPatch_EmptyBodyIsNoOp(t *testing.T) {
	p := &model.Product{ID: "p1", VoteCount: 2}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	modified, err := svc.ApplyUserPatch(context.Background(), "p1", "a@example.com", model.UserProductPatch{})
	require.NoError(t, err)
	assert.Zero(t, modified)
	assert.Equal(t, 2, p.VoteCount)
}

func TestUpdateByOwner_ForbiddenForNonOwner(t *testing.T) {
	p := &model.Product{ID: "p1", Owner: "owner@example.com", ProductName: "Widget"}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	_, err := svc.UpdateByOwner(context.Background(), "p1", "intruder@example.com", model.UpdateProductRequest{
		ProductName: strPtr("Hijacked"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Widget", p.ProductName)
}

func TestUpdateByOwner_PartialUpdate(t *testing.T) {
	p := &model.Product{ID: "p1", Owner: "owner@example.com", ProductName: "Widget", Details: "old", Status: model.StatusAccepted}
	repo := newFakeProductRepo(p)
	svc := NewProductService(repo)

	updated, err := svc.UpdateByOwner(context.Background(), "p1", "owner@example.com", model.UpdateProductRequest{
		Details: strPtr("new details"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", updated.ProductName)
	assert.Equal(t, "new details", updated.Details)
	assert.Equal(t, model.StatusAccepted, p.Status) // owner edits never touch status
}

func TestDeleteProduct_Permissions(t *testing.T) {
	repo := newFakeProductRepo(
		&model.Product{ID: "p1", Owner: "owner@example.com"},
		&model.Product{ID: "p2", Owner: "owner@example.com"},
	)
	svc := NewProductService(repo)

	err := svc.DeleteProduct(context.Background(), "p1", "intruder@example.com", false)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteProduct(context.Background(), "p1", "owner@example.com", false)
	assert.NoError(t, err)

	// a moderator may delete anyone's product
	err = svc.DeleteProduct(context.Background(), "p2", "mod@example.com", true)
	assert.NoError(t, err)

	err = svc.DeleteProduct(context.Background(), "p1", "owner@example.com", false)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListAccepted_PaginationMath(t *testing.T) {
	repo := newFakeProductRepo()
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		repo.products[id] = &model.Product{ID: id, Status: model.StatusAccepted}
	}
	// rejected and pending products never appear in the public listing
	repo.products["r"] = &model.Product{ID: "r", Status: model.StatusRejected}
	repo.products["p"] = &model.Product{ID: "p", Status: model.StatusPending}
	svc := NewProductService(repo)

	page1, err := svc.ListAccepted(context.Background(), "", 1, 4)
	require.NoError(t, err)
	assert.Len(t, page1.Result, 4)
	assert.Equal(t, 10, page1.TotalData)
	assert.Equal(t, 3, page1.TotalPages)

	page3, err := svc.ListAccepted(context.Background(), "", 3, 4)
	require.NoError(t, err)
	assert.Len(t, page3.Result, 2)
	assert.Equal(t, 3, page3.TotalPages)

	for _, p := range append(page1.Result, page3.Result...) {
		assert.Equal(t, model.StatusAccepted, p.Status)
	}
}

func TestListAccepted_DefaultsAppliedForBadParams(t *testing.T) {
	repo := newFakeProductRepo(&model.Product{ID: "p1", Status: model.StatusAccepted})
	svc := NewProductService(repo)

	page, err := svc.ListAccepted(context.Background(), "", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalData)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Result, 1)
}

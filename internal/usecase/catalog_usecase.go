package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
	"telemart/pkg/utils"
)

type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	carePlanRepo repository.CarePlanRepository
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
}

func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	carePlanRepo repository.CarePlanRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		carePlanRepo: carePlanRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
	}
}

func slugOrDefault(slug, name string) string {
	if slug != "" {
		return utils.Slugify(slug)
	}
	return utils.Slugify(name)
}

// slugTaken reports whether slug belongs to a record other than selfID.
func slugTaken(ownerID string, err error, selfID string) (bool, error) {
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return ownerID != selfID, nil
}

type CategoryInput struct {
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug"`
	ParentID     string `json:"parent_id"`
	Image        string `json:"image"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	category := &entity.Category{IsActive: true}
	if err := uc.applyCategory(ctx, category, input); err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyCategory(ctx, category, input); err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *CatalogUseCase) applyCategory(ctx context.Context, category *entity.Category, input CategoryInput) error {
	slug := slugOrDefault(input.Slug, input.Name)
	if slug == "" {
		return errors.BadRequest("Category slug cannot be empty", nil)
	}
	existing, err := uc.categoryRepo.GetBySlug(ctx, slug)
	var ownerID string
	if existing != nil {
		ownerID = existing.ID
	}
	taken, err := slugTaken(ownerID, err, category.ID)
	if err != nil {
		return err
	}
	if taken {
		return errors.Conflict("Category slug already exists")
	}
	if input.ParentID != "" {
		if input.ParentID == category.ID && category.ID != "" {
			return errors.BadRequest("Category cannot be its own parent", nil)
		}
		if _, err := uc.categoryRepo.GetByID(ctx, input.ParentID); err != nil {
			return errors.BadRequest("Invalid parent category", err)
		}
	}

	category.Name = input.Name
	category.Slug = slug
	category.ParentID = input.ParentID
	category.Image = input.Image
	category.Description = input.Description
	category.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	return nil
}

func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return uc.categoryRepo.GetBySlug(ctx, slug)
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx, activeOnly)
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(ctx, id)
}

type BrandInput struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug"`
	Logo     string `json:"logo"`
	IsActive *bool  `json:"is_active"`
}

func (uc *CatalogUseCase) CreateBrand(ctx context.Context, input BrandInput) (*entity.Brand, error) {
	brand := &entity.Brand{IsActive: true}
	if err := uc.applyBrand(ctx, brand, input); err != nil {
		return nil, err
	}
	if err := uc.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (uc *CatalogUseCase) UpdateBrand(ctx context.Context, id string, input BrandInput) (*entity.Brand, error) {
	brand, err := uc.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyBrand(ctx, brand, input); err != nil {
		return nil, err
	}
	if err := uc.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (uc *CatalogUseCase) applyBrand(ctx context.Context, brand *entity.Brand, input BrandInput) error {
	slug := slugOrDefault(input.Slug, input.Name)
	if slug == "" {
		return errors.BadRequest("Brand slug cannot be empty", nil)
	}
	existing, err := uc.brandRepo.GetBySlug(ctx, slug)
	var ownerID string
	if existing != nil {
		ownerID = existing.ID
	}
	taken, err := slugTaken(ownerID, err, brand.ID)
	if err != nil {
		return err
	}
	if taken {
		return errors.Conflict("Brand slug already exists")
	}

	brand.Name = input.Name
	brand.Slug = slug
	brand.Logo = input.Logo
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}
	return nil
}

func (uc *CatalogUseCase) GetBrand(ctx context.Context, id string) (*entity.Brand, error) {
	return uc.brandRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) GetBrandBySlug(ctx context.Context, slug string) (*entity.Brand, error) {
	return uc.brandRepo.GetBySlug(ctx, slug)
}

func (uc *CatalogUseCase) ListBrands(ctx context.Context, activeOnly bool) ([]*entity.Brand, error) {
	return uc.brandRepo.List(ctx, activeOnly)
}

func (uc *CatalogUseCase) DeleteBrand(ctx context.Context, id string) error {
	if _, err := uc.brandRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.brandRepo.Delete(ctx, id)
}

type CarePlanInput struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" validate:"gte=0"`
	DurationMonths int      `json:"duration_months" validate:"required,min=1"`
	ProductIDs     []string `json:"product_ids"`
	CategoryIDs    []string `json:"category_ids"`
	IsActive       *bool    `json:"is_active"`
}

func applyCarePlan(plan *entity.CarePlan, input CarePlanInput) {
	plan.Name = input.Name
	plan.Description = input.Description
	plan.Price = input.Price
	plan.DurationMonths = input.DurationMonths
	plan.ProductIDs = input.ProductIDs
	plan.CategoryIDs = input.CategoryIDs
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}
}

func (uc *CatalogUseCase) CreateCarePlan(ctx context.Context, input CarePlanInput) (*entity.CarePlan, error) {
	plan := &entity.CarePlan{IsActive: true}
	applyCarePlan(plan, input)
	if err := uc.carePlanRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *CatalogUseCase) UpdateCarePlan(ctx context.Context, id string, input CarePlanInput) (*entity.CarePlan, error) {
	plan, err := uc.carePlanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCarePlan(plan, input)
	if err := uc.carePlanRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *CatalogUseCase) ListCarePlans(ctx context.Context, activeOnly bool) ([]*entity.CarePlan, error) {
	return uc.carePlanRepo.List(ctx, activeOnly)
}

func (uc *CatalogUseCase) DeleteCarePlan(ctx context.Context, id string) error {
	if _, err := uc.carePlanRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.carePlanRepo.Delete(ctx, id)
}

// CarePlansForProduct returns active plans listing the product, its category,
// or named in the product's own carePlanIds.
func (uc *CatalogUseCase) CarePlansForProduct(ctx context.Context, productID string) ([]*entity.CarePlan, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	plans, err := uc.carePlanRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return applicablePlans(product, plans), nil
}

func applicablePlans(product *entity.Product, plans []*entity.CarePlan) []*entity.CarePlan {
	listed := make(map[string]bool, len(product.CarePlanIDs))
	for _, id := range product.CarePlanIDs {
		listed[id] = true
	}
	out := []*entity.CarePlan{}
	for _, p := range plans {
		if listed[p.ID] || p.AppliesTo(product) {
			out = append(out, p)
		}
	}
	return out
}

type ProductImageInput struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type ProductInput struct {
	Name              string              `json:"name" validate:"required"`
	Slug              string              `json:"slug"`
	CategoryID        string              `json:"category_id" validate:"required"`
	BrandID           string              `json:"brand_id"`
	ProductType       string              `json:"product_type" validate:"omitempty,oneof=basic variant"`
	Description       string              `json:"description"`
	IsActive          *bool               `json:"is_active"`
	IsOnline          *bool               `json:"is_online"`
	IsPreOrder        bool                `json:"is_pre_order"`
	IsOfficial        bool                `json:"is_official"`
	FreeShipping      bool                `json:"free_shipping"`
	BasePrice         float64             `json:"base_price" validate:"gte=0"`
	ComparePrice      float64             `json:"compare_price" validate:"gte=0"`
	DiscountPrice     float64             `json:"discount_price" validate:"gte=0"`
	StockQuantity     *int                `json:"stock_quantity" validate:"omitempty,gte=0"`
	LowStockThreshold int                 `json:"low_stock_threshold" validate:"gte=0"`
	Images            []ProductImageInput `json:"images" validate:"dive"`
	CarePlanIDs       []string            `json:"care_plan_ids"`
}

func (uc *CatalogUseCase) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error) {
	apply, err := uc.prepareProduct(ctx, "", input)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{IsActive: true, IsOnline: true}
	apply(product)
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the editable fields. Omitted stock keeps the stored
// quantity.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	apply, err := uc.prepareProduct(ctx, id, input)
	if err != nil {
		return nil, err
	}
	return uc.productRepo.Update(ctx, id, func(product *entity.Product) error {
		apply(product)
		return nil
	})
}

// prepareProduct validates references and the slug, and returns the field
// assignment for the product with the given id.
func (uc *CatalogUseCase) prepareProduct(ctx context.Context, id string, input ProductInput) (func(*entity.Product), error) {
	if _, err := uc.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		return nil, errors.BadRequest("Invalid category", err)
	}
	if input.BrandID != "" {
		if _, err := uc.brandRepo.GetByID(ctx, input.BrandID); err != nil {
			return nil, errors.BadRequest("Invalid brand", err)
		}
	}

	slug := slugOrDefault(input.Slug, input.Name)
	if slug == "" {
		return nil, errors.BadRequest("Product slug cannot be empty", nil)
	}
	existing, err := uc.productRepo.GetBySlug(ctx, slug)
	var ownerID string
	if existing != nil {
		ownerID = existing.ID
	}
	taken, err := slugTaken(ownerID, err, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.Conflict("Product slug already exists")
	}

	productType := input.ProductType
	if productType == "" {
		productType = entity.ProductTypeBasic
	}

	images := make([]entity.ProductImage, len(input.Images))
	for i, img := range input.Images {
		images[i] = entity.ProductImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}

	return func(product *entity.Product) {
		product.Name = input.Name
		product.Slug = slug
		product.CategoryID = input.CategoryID
		product.BrandID = input.BrandID
		product.ProductType = productType
		product.Description = input.Description
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.IsOnline != nil {
			product.IsOnline = *input.IsOnline
		}
		product.IsPreOrder = input.IsPreOrder
		product.IsOfficial = input.IsOfficial
		product.FreeShipping = input.FreeShipping
		product.BasePrice = input.BasePrice
		product.ComparePrice = input.ComparePrice
		product.DiscountPrice = input.DiscountPrice
		if input.StockQuantity != nil {
			product.StockQuantity = *input.StockQuantity
		}
		product.LowStockThreshold = input.LowStockThreshold
		product.Images = images
		product.CarePlanIDs = input.CarePlanIDs
	}, nil
}

func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, filter, limit, offset)
}

func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uc.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.SoftDelete(ctx, id)
}

type StorageNode struct {
	*entity.Storage
	Price *entity.Price `json:"price,omitempty"`
}

type ColorNode struct {
	*entity.Color
	Storages []StorageNode `json:"storages"`
}

type RegionNode struct {
	*entity.Region
	Colors []ColorNode `json:"colors"`
}

type NetworkNode struct {
	*entity.Network
	Colors []ColorNode `json:"colors"`
}

// ProductDetail is a product with its variant tree. Colors attached to
// neither a region nor a network are listed under Colors.
type ProductDetail struct {
	*entity.Product
	Category  *entity.Category   `json:"category,omitempty"`
	Brand     *entity.Brand      `json:"brand,omitempty"`
	Regions   []RegionNode       `json:"regions"`
	Networks  []NetworkNode      `json:"networks"`
	Colors    []ColorNode        `json:"colors"`
	CarePlans []*entity.CarePlan `json:"care_plans"`
}

func (uc *CatalogUseCase) GetProductDetail(ctx context.Context, id string) (*ProductDetail, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.assembleDetail(ctx, product)
}

func (uc *CatalogUseCase) GetProductDetailBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := uc.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return uc.assembleDetail(ctx, product)
}

func (uc *CatalogUseCase) assembleDetail(ctx context.Context, product *entity.Product) (*ProductDetail, error) {
	var (
		category  *entity.Category
		brand     *entity.Brand
		regions   []*entity.Region
		networks  []*entity.Network
		colors    []*entity.Color
		storages  []*entity.Storage
		prices    []*entity.Price
		carePlans []*entity.CarePlan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := uc.categoryRepo.GetByID(gctx, product.CategoryID)
		if err != nil && !errors.IsNotFound(err) {
			return err
		}
		category = c
		return nil
	})
	if product.BrandID != "" {
		g.Go(func() error {
			b, err := uc.brandRepo.GetByID(gctx, product.BrandID)
			if err != nil && !errors.IsNotFound(err) {
				return err
			}
			brand = b
			return nil
		})
	}
	g.Go(func() (err error) {
		carePlans, err = uc.carePlanRepo.List(gctx, true)
		return err
	})
	if !product.IsBasic() {
		g.Go(func() (err error) {
			regions, err = uc.variantRepo.ListRegions(gctx, product.ID)
			return err
		})
		g.Go(func() (err error) {
			networks, err = uc.variantRepo.ListNetworks(gctx, product.ID)
			return err
		})
		g.Go(func() (err error) {
			colors, err = uc.variantRepo.ListColors(gctx, product.ID)
			return err
		})
		g.Go(func() (err error) {
			storages, err = uc.variantRepo.ListStorages(gctx, product.ID)
			return err
		})
		g.Go(func() (err error) {
			prices, err = uc.variantRepo.ListPrices(gctx, product.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Internal("Failed to load product detail", err)
	}

	detail := &ProductDetail{
		Product:   product,
		Category:  category,
		Brand:     brand,
		Regions:   []RegionNode{},
		Networks:  []NetworkNode{},
		Colors:    []ColorNode{},
		CarePlans: applicablePlans(product, carePlans),
	}

	priceByStorage := make(map[string]*entity.Price, len(prices))
	for _, p := range prices {
		priceByStorage[p.StorageID] = p
	}
	storagesByColor := make(map[string][]StorageNode)
	for _, s := range storages {
		storagesByColor[s.ColorID] = append(storagesByColor[s.ColorID], StorageNode{Storage: s, Price: priceByStorage[s.ID]})
	}

	colorsByRegion := make(map[string][]ColorNode)
	colorsByNetwork := make(map[string][]ColorNode)
	for _, c := range colors {
		node := ColorNode{Color: c, Storages: storagesByColor[c.ID]}
		if node.Storages == nil {
			node.Storages = []StorageNode{}
		}
		switch {
		case c.RegionID != "":
			colorsByRegion[c.RegionID] = append(colorsByRegion[c.RegionID], node)
		case c.NetworkID != "":
			colorsByNetwork[c.NetworkID] = append(colorsByNetwork[c.NetworkID], node)
		default:
			detail.Colors = append(detail.Colors, node)
		}
	}

	for _, r := range regions {
		node := RegionNode{Region: r, Colors: colorsByRegion[r.ID]}
		if node.Colors == nil {
			node.Colors = []ColorNode{}
		}
		detail.Regions = append(detail.Regions, node)
	}
	for _, n := range networks {
		node := NetworkNode{Network: n, Colors: colorsByNetwork[n.ID]}
		if node.Colors == nil {
			node.Colors = []ColorNode{}
		}
		detail.Networks = append(detail.Networks, node)
	}

	return detail, nil
}

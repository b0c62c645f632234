package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"marketplace/models"
	"marketplace/repositories"
)

const productCacheTTL = 5 * time.Minute

// ProductFilters mirrors the query parameters of GET /products.
type ProductFilters struct {
	CategoryID int
	Search     string
	Featured   bool
	MinPrice   float64
	MaxPrice   float64
	Sort       string
	Page       int
	Limit      int
}

type ProductService struct {
	productRepo *repositories.ProductRepository
	userRepo    *repositories.UserRepository
	sfg         singleflight.Group // collapses concurrent cache misses
}

func NewProductService(productRepo *repositories.ProductRepository, userRepo *repositories.UserRepository) *ProductService {
	return &ProductService{productRepo: productRepo, userRepo: userRepo}
}

func (s *ProductService) GetAllCategories() []models.Category {
	return s.productRepo.GetAllCategories()
}

// GetProducts filters, sorts and paginates the catalog. The serialized
// result is cached in redis when available; concurrent misses for the
// same key are collapsed through singleflight.
func (s *ProductService) GetProducts(filters ProductFilters) (*models.ProductList, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 10
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}

	cacheKey := productCacheKey(filters)
	ctx := context.Background()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var list models.ProductList
			if err := json.Unmarshal([]byte(cached), &list); err == nil {
				return &list, nil
			}
		}
	}

	v, err, _ := s.sfg.Do(cacheKey, func() (interface{}, error) {
		list := s.listProducts(filters)

		if models.RedisClient != nil {
			data, err := json.Marshal(list)
			if err == nil {
				if err := models.RedisClient.Set(ctx, cacheKey, data, productCacheTTL).Err(); err != nil {
					log.Printf("product cache set error: %v", err)
				}
			}
		}

		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ProductList), nil
}

func (s *ProductService) listProducts(filters ProductFilters) *models.ProductList {
	all := s.productRepo.GetAll()

	filtered := make([]models.Product, 0, len(all))
	for _, p := range all {
		if filters.CategoryID > 0 && p.CategoryID != filters.CategoryID {
			continue
		}
		if filters.Featured && !p.Featured {
			continue
		}
		if filters.MinPrice > 0 && p.Price < filters.MinPrice {
			continue
		}
		if filters.MaxPrice > 0 && p.Price > filters.MaxPrice {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, filters.Sort)

	total := len(filtered)
	start := (filters.Page - 1) * filters.Limit
	if start > total {
		start = total
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}

	return &models.ProductList{
		Products: filtered[start:end],
		Total:    total,
		Page:     filters.Page,
		Limit:    filters.Limit,
	}
}

func sortProducts(products []models.Product, order string) {
	switch order {
	case "price_asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price_desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "name_asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	case "name_desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name > products[j].Name })
	case "newest":
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *ProductService) CreateProduct(sellerID int, req models.CreateProductRequest) (*models.Product, error) {
	if _, err := s.productRepo.GetCategoryByID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("category %d not found", req.CategoryID)
	}

	sellerName := ""
	if seller, err := s.userRepo.FindByID(sellerID); err == nil {
		sellerName = seller.FirstName + " " + seller.LastName
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		CategoryID:  req.CategoryID,
		SellerID:    sellerID,
		SellerName:  sellerName,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}

	s.productRepo.Create(product)
	s.invalidateCache()
	return product, nil
}

func (s *ProductService) UpdateProduct(id int, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.CategoryID > 0 {
		product.CategoryID = req.CategoryID
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return product, nil
}

// DeleteProduct removes the product outright. Cart lines pointing at it
// survive and enrich to a nil product snapshot from then on.
func (s *ProductService) DeleteProduct(id int) error {
	if _, err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// UpdateRating is called by the review service after review writes.
func (s *ProductService) UpdateRating(productID int, rating float64, reviewCount int) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	product.Rating = rating
	product.ReviewCount = reviewCount
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func productCacheKey(f ProductFilters) string {
	return fmt.Sprintf("products_list_c%d_s%s_f%t_min%.2f_max%.2f_o%s_p%d_l%d",
		f.CategoryID, f.Search, f.Featured, f.MinPrice, f.MaxPrice, f.Sort, f.Page, f.Limit)
}

func (s *ProductService) invalidateCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

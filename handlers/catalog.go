package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"pharmacy-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListCategories returns all categories (public)
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("id asc").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"count":      len(categories),
			"categories": categories,
		})
	}
}

// ListProducts returns a filtered, paginated product listing (public)
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}

		query := db.Model(&models.Product{}).Preload("Category")

		if category := c.Query("category"); category != "" {
			query = query.Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.name = ?", category)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(products.manufacturer) LIKE ?",
				pattern, pattern, pattern,
			)
		}
		if c.Query("popular") == "true" {
			query = query.Where("is_popular = ?", true)
		}
		if c.Query("new") == "true" {
			query = query.Where("is_new = ?", true)
		}
		if c.Query("in_stock") == "true" {
			query = query.Where("in_stock = ?", true)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count products"})
			return
		}

		var products []models.Product
		if err := query.Order("products.created_at desc").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"products":    products,
			"total":       total,
			"page":        page,
			"limit":       limit,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		})
	}
}

// GetProduct returns a single product by id (public)
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

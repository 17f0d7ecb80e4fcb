package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"go-shop/internal/apperror"
	"go-shop/internal/models"
)

type ProductService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewProductService(db *sql.DB, logger zerolog.Logger) *ProductService {
	return &ProductService{
		db:     db,
		logger: logger,
	}
}

// Create inserts a product dated to the day of insertion. The creator id is
// transient: it is logged for traceability but not persisted.
func (s *ProductService) Create(req models.NewProductRequest, creatorID int) (*models.Product, error) {
	dateAdded := time.Now().Format("2006-01-02")

	result, err := s.db.Exec(
		"INSERT INTO products (name, description, price, image_url, date_added) VALUES (?, ?, ?, ?, ?)",
		req.Name, req.Description, req.Price, req.ImageURL, dateAdded,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating product")
		return nil, apperror.NewDatabaseError("failed to create product", err)
	}

	productID, err := result.LastInsertId()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error getting product ID")
		return nil, apperror.NewDatabaseError("failed to get product ID", err)
	}

	product, err := s.GetByID(int(productID))
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("product_id", product.ID).
		Str("name", product.Name).
		Int("creator_id", creatorID).
		Msg("Product created")
	return product, nil
}

func (s *ProductService) List() ([]models.Product, error) {
	rows, err := s.db.Query(
		"SELECT id, name, description, price, image_url, date_added FROM products ORDER BY id",
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing products")
		return nil, apperror.NewDatabaseError("failed to list products", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.DateAdded); err != nil {
			s.logger.Error().Err(err).Msg("Error scanning product")
			return nil, apperror.NewDatabaseError("failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list products", err)
	}

	return products, nil
}

func (s *ProductService) GetByID(productID int) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRow(
		"SELECT id, name, description, price, image_url, date_added FROM products WHERE id = ?",
		productID,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.DateAdded)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFoundError("product not found", nil)
	}
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", productID).Msg("Error fetching product")
		return nil, apperror.NewDatabaseError("failed to fetch product", err)
	}

	return &p, nil
}

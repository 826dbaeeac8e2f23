package handler

import (
	"github.com/shopspring/decimal"

	"github.com/gradestock/backend/internal/domain/catalog"
)

// productResponse is the API shape of a master product with its variants
type productResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	CategoryID int64             `json:"category_id"`
	ImagePath  string            `json:"image_path,omitempty"`
	Variants   []variantResponse `json:"variants"`
}

// variantResponse is the API shape of a product variant
type variantResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Grade        string              `json:"grade,omitempty"`
	CashPrice    decimal.NullDecimal `json:"cash_price"`
	VoucherPrice decimal.NullDecimal `json:"voucher_price"`
	SalePrice    decimal.NullDecimal `json:"sale_price"`
	ImagePath    string              `json:"image_path,omitempty"`
}

func toProductResponse(p *catalog.MasterProduct) productResponse {
	variants := make([]variantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, variantResponse{
			ID:           v.ID.String(),
			Name:         v.Name,
			Grade:        v.Grade,
			CashPrice:    v.CashPrice,
			VoucherPrice: v.VoucherPrice,
			SalePrice:    v.SalePrice,
			ImagePath:    v.ImagePath,
		})
	}
	return productResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		CategoryID: p.CategoryID,
		ImagePath:  p.ImagePath,
		Variants:   variants,
	}
}

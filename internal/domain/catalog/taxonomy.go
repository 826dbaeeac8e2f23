package catalog

// Taxonomy entities mirror the remote catalog's hierarchy
// (super category → product line → category). Their primary keys are the
// remote catalog's own numeric identifiers, so a taxonomy refresh is a
// plain upsert by id.

// SuperCat is the top level of the remote taxonomy.
type SuperCat struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(64);not null;index"`
}

// TableName returns the table name for GORM
func (SuperCat) TableName() string {
	return "super_cats"
}

// ProductLine groups categories under a super category.
type ProductLine struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"type:varchar(64);not null;index"`
	SuperCatID int64  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProductLine) TableName() string {
	return "product_lines"
}

// Category is the level the sync engine crawls. Active is supplied by the
// taxonomy refresh and is read-only to the sync engine.
type Category struct {
	ID            int64  `gorm:"primaryKey"`
	Name          string `gorm:"type:varchar(128);not null;index"`
	ProductLineID int64  `gorm:"not null;index"`
	Active        bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

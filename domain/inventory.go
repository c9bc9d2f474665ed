package domain

type InventoryItem struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Category    string `db:"category" json:"category"`
	BatchNo     string `db:"batchNo" json:"batchNo"`
	Unit        string `db:"unit" json:"unit"`
	MinStock    int64  `db:"minStock" json:"minStock"`
	Rack        string `db:"rack" json:"rack"`
	ProductType string `db:"productType" json:"productType"`
	CreatedAt   int64  `db:"createdAt" json:"createdAt"`
	UpdatedAt   int64  `db:"updatedAt" json:"updatedAt"`
}

// NewInventoryItem is the payload for creating a stock item. MinStock is a pointer so
// that an absent threshold can be told apart from zero.
type NewInventoryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	BatchNo     string `json:"batchNo"`
	Unit        string `json:"unit"`
	MinStock    *int64 `json:"minStock"`
	Rack        string `json:"rack,omitempty"`
	ProductType string `json:"productType,omitempty"`
}

type InventoryFilter struct {
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

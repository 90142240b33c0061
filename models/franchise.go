package models

// FranchiseStore is one store shown on the locator map.
type FranchiseStore struct {
	ID        int     `json:"id"`
	CompanyID int     `json:"company_id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Active    bool    `json:"active"`
}

type WriteFranchiseStoreRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address" binding:"required"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Active  *bool   `json:"active"`
}

package gomitasserver

type CreateStockRequest struct {
	ProductId int64 `json:"productId" binding:"required"`
	Quantity  int64 `json:"quantity"`
}

type AdjustStockRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

package dto

// RecordBeerDTO 记一杯；drank_at 为空表示当前时间，格式 "2006-01-02 15:04:05"
type RecordBeerDTO struct {
	Quantity float64 `json:"quantity"`
	DrankAt  string  `json:"drank_at"`
}

// UpdateBeerDTO 修改数量与时间，两者均为整体覆盖
type UpdateBeerDTO struct {
	Quantity float64 `json:"quantity"`
	DrankAt  string  `json:"drank_at" binding:"required"`
}

package dto

type ClassificationResponse struct {
	ImageID     uint    `json:"image_id"`
	ImagePath   string  `json:"image_path"`
	Result      string  `json:"result"`
	Confidence  float64 `json:"confidence,omitempty"`
	Explanation string  `json:"explanation,omitempty"`
}

type ImageRecordResponse struct {
	ImageID   uint   `json:"image_id"`
	UserID    uint   `json:"user_id"`
	ImagePath string `json:"image_path"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}

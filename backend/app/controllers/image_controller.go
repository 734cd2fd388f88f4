package controllers

import (
	"encoding/json"
	"net/http"

	"fruitlens/backend/app/classifier"
	"fruitlens/backend/app/dto"
	"fruitlens/backend/app/middleware"
	"fruitlens/backend/app/services"
	"fruitlens/backend/global"
)

type ImageController struct {
	Images     *services.ImageService
	Classifier *classifier.Service
}

func NewImageController(images *services.ImageService, cls *classifier.Service) *ImageController {
	return &ImageController{Images: images, Classifier: cls}
}

// Upload accepts a multipart photo, stores it, classifies it and records the
// result for the authenticated user.
func (c *ImageController) Upload(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image")
		return
	}
	defer file.Close()

	path, err := c.Images.SaveUpload(claims.UserID, header.Filename, file)
	if err != nil {
		global.Logger.Error().Err(err).Msg("save upload")
		writeError(w, http.StatusInternalServerError, "cannot store image")
		return
	}
	res := c.Classifier.ClassifyOrFallback(r.Context(), path)
	id, err := c.Images.Record(claims.UserID, path, res.Label)
	if err != nil {
		global.Logger.Error().Err(err).Msg("record classification")
		writeError(w, http.StatusInternalServerError, "cannot record result")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(dto.ClassificationResponse{
		ImageID: id, ImagePath: path, Result: res.Label,
		Confidence: res.Confidence, Explanation: res.Explanation,
	})
}

// History lists the authenticated user's records, most recent first.
func (c *ImageController) History(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	recs, err := c.Images.HistoryFor(claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cannot list history")
		return
	}
	out := make([]dto.ImageRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.ImageRecordResponse{
			ImageID: rec.ID, UserID: rec.UserID, ImagePath: rec.ImagePath,
			Result: rec.Result, Timestamp: rec.Timestamp,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

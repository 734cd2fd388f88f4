package classifier

import (
	"context"
	"math/rand"
)

// RandomLabel picks a uniformly random ripeness category.
func RandomLabel() string { return Labels[rand.Intn(len(Labels))] }

// Service wraps a Classifier so callers always get a usable label. A nil
// inner classifier is valid and always falls back.
type Service struct {
	inner Classifier
}

func NewService(inner Classifier) *Service { return &Service{inner: inner} }

// ClassifyOrFallback never fails: any upstream error degrades to a random
// label with no explanation.
func (s *Service) ClassifyOrFallback(ctx context.Context, imagePath string) Result {
	if s.inner != nil {
		if res, err := s.inner.Classify(ctx, imagePath); err == nil {
			return res
		}
	}
	return Result{Label: RandomLabel()}
}

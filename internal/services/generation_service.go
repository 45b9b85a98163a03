package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"fotofocinho-backend/internal/aiml"
	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/supabase"
	"fotofocinho-backend/internal/watermark"
)

// GenerationService runs the portrait pipeline: download the original, call
// the generator, watermark the result, store both variants, and track the
// whole attempt in a generation record.
type GenerationService struct {
	generator PortraitGenerator
	store     Store
	objects   ObjectStore
	events    EventPublisher
}

func NewGenerationService(generator PortraitGenerator, store Store, objects ObjectStore, events EventPublisher) *GenerationService {
	return &GenerationService{
		generator: generator,
		store:     store,
		objects:   objects,
		events:    events,
	}
}

type GenerationResult struct {
	GenerationID   uuid.UUID
	WatermarkedURL string
}

// Generate runs one portrait generation attempt. The record is created in
// generating state before the external call so an abandoned attempt is
// visible, and any failure after that point marks it failed. The clean image
// is never returned; callers only ever see the watermarked preview.
func (s *GenerationService) Generate(ctx context.Context, storagePath, style string) (*GenerationResult, error) {
	if storagePath == "" {
		return nil, apperr.New(apperr.ErrValidation, "Caminho da imagem é obrigatório")
	}
	if !aiml.KnownStyle(style) {
		style = aiml.DefaultStyle
	}

	original, err := s.objects.Download(supabase.BucketOriginals, storagePath)
	if err != nil {
		log.Printf("[generation] original download failed path=%s err=%v", storagePath, err)
		return nil, apperr.New(apperr.ErrNotFound, "Imagem não encontrada")
	}

	rec := &models.GenerationRecord{
		ID:                uuid.New(),
		Style:             style,
		OriginalImagePath: storagePath,
		Status:            models.GenerationStatusGenerating,
	}
	if err := s.store.CreateGeneration(rec); err != nil {
		return nil, err
	}

	generated, err := s.generator.GeneratePortrait(original, mimeTypeForPath(storagePath), style)
	if err != nil {
		s.fail(rec.ID)
		log.Printf("[generation] portrait generation failed id=%s err=%v", rec.ID, err)
		return nil, apperr.Newf(apperr.ErrUpstream, "Falha ao gerar retrato: %v", err)
	}

	watermarked, err := watermark.Apply(generated)
	if err != nil {
		s.fail(rec.ID)
		return nil, apperr.Newf(apperr.ErrUpstream, "Falha ao gerar retrato: %v", err)
	}

	generatedPath := rec.ID.String() + "/clean.jpg"
	watermarkedPath := rec.ID.String() + "/preview.jpg"

	if err := s.objects.Upload(supabase.BucketGenerated, generatedPath, generated, "image/jpeg"); err != nil {
		s.fail(rec.ID)
		return nil, apperr.Newf(apperr.ErrUpstream, "Falha ao gerar retrato: %v", err)
	}
	if err := s.objects.Upload(supabase.BucketWatermarked, watermarkedPath, watermarked, "image/jpeg"); err != nil {
		s.fail(rec.ID)
		return nil, apperr.Newf(apperr.ErrUpstream, "Falha ao gerar retrato: %v", err)
	}

	if err := s.store.CompleteGeneration(rec.ID, generatedPath, watermarkedPath); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishGenerationEvent(rec.ID, string(models.GenerationStatusCompleted)); err != nil {
			log.Printf("[generation] event publish failed id=%s err=%v", rec.ID, err)
		}
	}

	log.Printf("[generation] completed id=%s style=%s", rec.ID, style)
	return &GenerationResult{
		GenerationID:   rec.ID,
		WatermarkedURL: s.objects.PublicURL(supabase.BucketWatermarked, watermarkedPath),
	}, nil
}

// fail is best effort: the user already gets an error either way.
func (s *GenerationService) fail(id uuid.UUID) {
	if err := s.store.FailGeneration(id); err != nil {
		log.Printf("[generation] failed to mark record as failed id=%s err=%v", id, err)
	}
	if s.events != nil {
		if err := s.events.PublishGenerationEvent(id, string(models.GenerationStatusFailed)); err != nil {
			log.Printf("[generation] event publish failed id=%s err=%v", id, err)
		}
	}
}

func mimeTypeForPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
